// Package normalize puts multi-word mentions into their canonical form.
//
// A mention is parsed as a standalone utterance. Noun-headed mentions get
// their root in the nominative, dependents of the root agreeing with it,
// numerals in the nominative and nouns under numerals in the genitive.
// Anything else is left as written.
package normalize

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ppiankov/aspecta/internal/model"
	"github.com/ppiankov/aspecta/internal/morph"
	"github.com/ppiankov/aspecta/internal/syntax"
)

// POS prefixes accepted per role
var (
	nounPOS      = []string{model.POSNoun}
	adjectivePOS = []string{"ADJ", "PRT"}
)

// Normalizer normalizes mention tokens with a parser and an inflector
type Normalizer struct {
	parser    syntax.Parser
	inflector *morph.Inflector
	logger    *zap.Logger
}

// New creates a normalizer. A nil logger disables diagnostics.
func New(parser syntax.Parser, inflector *morph.Inflector, logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Normalizer{
		parser:    parser,
		inflector: inflector,
		logger:    logger,
	}
}

// Normalize returns the canonical form of a mention, one token per input
// token. Mentions without a noun root are returned unchanged; a token with
// no suitable form keeps its surface form. A failed or misaligned parse is
// logged and leaves the mention as written. Only a cancelled ctx is an
// error.
func (n *Normalizer) Normalize(ctx context.Context, tokens []string) ([]string, error) {
	out := append([]string(nil), tokens...)
	if len(tokens) == 0 {
		return out, nil
	}

	parse, err := n.parser.Parse(ctx, tokens)
	if err == nil {
		err = syntax.Align(tokens, parse)
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("parse mention: %w", ctxErr)
		}
		n.logger.Warn("parse failed, mention left as is",
			zap.Strings("tokens", tokens),
			zap.Error(err),
		)
		return out, nil
	}

	root := model.Root(parse)
	if root < 0 {
		n.logger.Debug("no root, mention left as is", zap.Strings("tokens", tokens))
		return out, nil
	}
	if parse[root].POS != model.POSNoun {
		n.logger.Debug("root is not a noun, mention left as is",
			zap.Strings("tokens", tokens),
			zap.String("root_pos", parse[root].POS),
		)
		return out, nil
	}

	agreement := Agreement(parse[root])
	roles := Classify(parse, root)

	for i, role := range roles {
		out[i] = n.inflect(tokens[i], role, agreement)
	}

	if n.logger.Core().Enabled(zap.DebugLevel) {
		n.logger.Debug("normalized mention",
			zap.Strings("tokens", tokens),
			zap.Strings("normalized", out),
			zap.String("agreement", agreement),
		)
	}

	return out, nil
}

func (n *Normalizer) inflect(word string, role Role, agreement string) string {
	switch role {
	case RoleNumeralModifier:
		return n.inflector.Inflect(word, nil, model.GrammemeNomn)
	case RoleNumeralGoverned:
		return n.inflector.Inflect(word, nounPOS, model.GrammemeGent)
	case RoleRoot:
		return n.inflector.Inflect(word, nounPOS, model.GrammemeNomn)
	case RoleAgreeingDependent:
		return n.inflector.Inflect(word, adjectivePOS, model.GrammemeNomn, agreement)
	default:
		return word
	}
}
