package rules

import "regexp"

var (
	sqlInjectionRe = regexp.MustCompile(`execute\s*\(["'].*%s.*["']\s*%`)
	cmdInjectionRe = regexp.MustCompile(`os\.system\(.*\+.*\)|subprocess\.(call|run)\(.*\+.*\)`)
	credentialsRe  = regexp.MustCompile(`(?i)(password|passwd|pwd|secret|token|api_key)\s*=\s*["'][^"']+["']`)
	weakCryptoRe   = regexp.MustCompile(`(?i)\b(md5|sha1)\b`)
	evalRe         = regexp.MustCompile(`\beval\s*\(`)
	pickleRe       = regexp.MustCompile(`pickle\.loads`)
)

func securityRules() []Rule {
	return []Rule{
		{
			ID:          "sql-injection",
			Category:    CategorySecurity,
			Severity:    SeverityCritical,
			Pattern:     sqlInjectionRe,
			CWE:         "CWE-89",
			Description: "SQL injection vulnerability detected",
			FixTemplate: `Use parameterized queries: cursor.execute("SELECT * FROM users WHERE id = ?", (user_id,))`,
		},
		{
			ID:          "command-injection",
			Category:    CategorySecurity,
			Severity:    SeverityCritical,
			Pattern:     cmdInjectionRe,
			CWE:         "CWE-78",
			Description: "Command injection vulnerability",
			FixTemplate: `Use subprocess with list arguments: subprocess.run(["command", arg1, arg2])`,
		},
		{
			ID:          "hardcoded-credentials",
			Category:    CategorySecurity,
			Severity:    SeverityCritical,
			Pattern:     credentialsRe,
			CWE:         "CWE-798",
			Description: "Hardcoded credentials detected",
			FixTemplate: `%1 = os.getenv("%U1")`,
		},
		{
			ID:          "weak-crypto",
			Category:    CategorySecurity,
			Severity:    SeverityWarning,
			Pattern:     weakCryptoRe,
			CWE:         "CWE-327",
			Description: "Weak cryptographic algorithm",
			FixTemplate: `Use SHA-256 or better: hashlib.sha256(data.encode())`,
		},
		{
			ID:          "eval-usage",
			Category:    CategorySecurity,
			Severity:    SeverityCritical,
			Pattern:     evalRe,
			CWE:         "CWE-95",
			Description: "Dangerous eval() usage",
			FixTemplate: `Use ast.literal_eval() for safe evaluation`,
		},
		{
			ID:          "pickle-load",
			Category:    CategorySecurity,
			Severity:    SeverityWarning,
			Pattern:     pickleRe,
			CWE:         "CWE-502",
			Description: "Unsafe deserialization with pickle",
			FixTemplate: `Use json.loads() for untrusted data`,
		},
	}
}
