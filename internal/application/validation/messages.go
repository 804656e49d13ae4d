package validation

import (
	"strconv"
	"strings"
)

var defaultMessages = map[string]string{
	"required":        "The :attribute field is required.",
	"string":          "The :attribute must be a string.",
	"integer":         "The :attribute must be an integer.",
	"numeric":         "The :attribute must be a number.",
	"boolean":         "The :attribute field must be true or false.",
	"date":            "The :attribute is not a valid date.",
	"max.string":      "The :attribute may not be greater than :max characters.",
	"max.numeric":     "The :attribute may not be greater than :max.",
	"digits":          "The :attribute must be :digits digits.",
	"between.string":  "The :attribute must be between :min and :max characters.",
	"between.numeric": "The :attribute must be between :min and :max.",
	"exists":          "The selected :attribute is invalid.",
	"unique":          "The :attribute has already been taken.",
}

// message resolves the text for a failed constraint. Overrides are looked up
// as "field.rule" then "rule".
func message(rules RuleSet, field FieldRules, c Constraint) string {
	rule := c.Kind.String()

	tmpl, ok := rules.Messages[field.Field+"."+rule]
	if !ok {
		tmpl, ok = rules.Messages[rule]
	}
	if !ok {
		key := rule
		if c.Kind == KindMaxLength || c.Kind == KindRange {
			if field.numeric() {
				key += ".numeric"
			} else {
				key += ".string"
			}
		}
		tmpl = defaultMessages[key]
	}

	replacer := strings.NewReplacer(
		":attribute", attributeName(rules, field.Field),
		":digits", strconv.Itoa(c.N),
		":min", c.Min.String(),
		":max", maxPlaceholder(c),
	)
	return replacer.Replace(tmpl)
}

func maxPlaceholder(c Constraint) string {
	if c.Kind == KindMaxLength {
		return strconv.Itoa(c.N)
	}
	return c.Max.String()
}

// attributeName renders "sub_category_id" as "sub category id".
func attributeName(rules RuleSet, field string) string {
	if name, ok := rules.Attributes[field]; ok {
		return name
	}
	return strings.ReplaceAll(field, "_", " ")
}
