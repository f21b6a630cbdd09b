package rules

// builtin assembles the full detection catalog. Order matters: it fixes the
// registry insertion index used as the final sort key for issues.
func builtin() []Rule {
	var list []Rule
	list = append(list, securityRules()...)
	list = append(list, performanceRules()...)
	list = append(list, qualityRules()...)
	list = append(list, deadCodeRules()...)
	list = append(list, typeHintRules()...)
	list = append(list, syntaxRules()...)
	return list
}
