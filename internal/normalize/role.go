package normalize

import (
	"strings"

	"github.com/ppiankov/aspecta/internal/model"
)

// Role is the syntactic role of a token inside a mention
type Role int

const (
	// RoleOther tokens keep their surface form
	RoleOther Role = iota
	// RoleNumeralModifier is a numeral modifying its head
	RoleNumeralModifier
	// RoleNumeralGoverned is a noun governed by a numeral
	RoleNumeralGoverned
	// RoleRoot is the syntactic root of the mention
	RoleRoot
	// RoleAgreeingDependent agrees with the root in gender or number
	RoleAgreeingDependent
)

var roleNames = map[Role]string{
	RoleOther:             "other",
	RoleNumeralModifier:   "numeral-modifier",
	RoleNumeralGoverned:   "numeral-governed",
	RoleRoot:              "root",
	RoleAgreeingDependent: "agreeing-dependent",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// agreeingDeps are the relations whose dependents agree with the root
var agreeingDeps = map[string]bool{
	model.DepAppos:  true,
	model.DepAcl:    true,
	model.DepAmod:   true,
	model.DepDet:    true,
	model.DepClf:    true,
	model.DepNummod: true,
}

// Classify assigns a role to every token of a parse. The first matching
// rule wins: numeral modifier, noun under a numeral, root, dependent of the
// root, other.
func Classify(parse []model.Annotation, root int) []Role {
	governed := make(map[int]bool)
	for _, a := range parse {
		if strings.HasPrefix(a.Dep, model.DepNummod) && !a.IsRoot() {
			governed[a.Head] = true
		}
	}

	roles := make([]Role, len(parse))
	for i, a := range parse {
		switch {
		case a.Dep == model.DepNummod:
			roles[i] = RoleNumeralModifier
		case governed[i]:
			roles[i] = RoleNumeralGoverned
		case i == root:
			roles[i] = RoleRoot
		case a.Head == root && agreeingDeps[a.Dep]:
			roles[i] = RoleAgreeingDependent
		default:
			roles[i] = RoleOther
		}
	}
	return roles
}

// Agreement returns the grammeme dependents of the root must carry:
// plur for a plural root, otherwise the root's gender.
func Agreement(root model.Annotation) string {
	if root.Feat("Number") == "Plur" {
		return model.GrammemePlur
	}

	switch root.Feat("Gender") {
	case "Fem":
		return model.GrammemeFemn
	case "Neut":
		return model.GrammemeNeut
	default:
		return model.GrammemeMasc
	}
}
