package match

import "regexp"

// TechTokens is the fixed, case-insensitive vocabulary used to classify text
// as technical. Entries are matched as lower-cased substrings. Extend the
// table, not the matching code.
var TechTokens = []string{
	// Languages
	"python", "java", "javascript", "typescript", "c#", "c++", "go", "golang", "rust", "kotlin", "swift", "php",
	// Web/Frameworks
	"react", "angular", "vue", "svelte", "next.js", "nuxt", "remix", "vite", "express", "nestjs", "spring", "spring boot", "django", "flask", "fastapi", ".net", ".net core", "asp.net", "laravel", "rails",
	// Data/Queues/Search
	"postgres", "mysql", "mariadb", "mongodb", "dynamodb", "redis", "elasticsearch", "kafka", "rabbitmq", "sqs", "sns", "kinesis", "neo4j", "clickhouse",
	// Cloud/Infra
	"aws", "azure", "gcp", "docker", "kubernetes", "helm", "terraform", "cloudformation", "nginx", "istio", "linkerd",
	// APIs/Proto
	"rest", "graphql", "grpc", "websocket", "socket.io", "openapi", "swagger",
	// CI/CD & Testing
	"jenkins", "github actions", "gitlab ci", "circleci", "pytest", "unittest", "jest", "mocha", "chai", "cypress", "playwright", "selenium", "junit",
	// Tools/Build
	"webpack", "babel", "esbuild", "ts-node", "pnpm", "yarn", "npm", "maven", "gradle", "poetry", "pipenv",
	// Observability
	"prometheus", "grafana", "elk", "opentelemetry", "sentry", "datadog", "new relic",
}

// PersonalPatterns groups the regexes that flag biographical, contact, or
// employment-duration content. All fields are data; callers may supply their
// own set (for example with candidate-specific name patterns from config).
type PersonalPatterns struct {
	Names         []*regexp.Regexp
	CompanySuffix *regexp.Regexp
	Month         *regexp.Regexp
	Year          *regexp.Regexp
	Duration      *regexp.Regexp
	HRPhrases     []*regexp.Regexp
}

// DefaultPersonalPatterns returns the stock pattern set. Name patterns start
// empty; deployments add candidate names via configuration.
func DefaultPersonalPatterns() PersonalPatterns {
	return PersonalPatterns{
		CompanySuffix: regexp.MustCompile(`(?i)\b(inc|llc|ltd|pvt|pvt\.?\s*ltd|llp|technologies|solutions|systems|labs)\b`),
		Month:         regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\b`),
		Year:          regexp.MustCompile(`\b(19|20)\d{2}\b`),
		Duration:      regexp.MustCompile(`(?i)\b\d+\s*(years?|yrs?|months?|mos?)\b`),
		HRPhrases: []*regexp.Regexp{
			regexp.MustCompile(`(?i)how\s+long`),
			regexp.MustCompile(`(?i)worked\s+as`),
			regexp.MustCompile(`(?i)work(?:ed)?\s+at`),
			regexp.MustCompile(`(?i)tenure`),
			regexp.MustCompile(`(?i)duration`),
			regexp.MustCompile(`(?i)\bexperience\b`),
			regexp.MustCompile(`(?i)\brole\b`),
			regexp.MustCompile(`(?i)\bposition\b`),
			regexp.MustCompile(`(?i)\bdesignation\b`),
			regexp.MustCompile(`(?i)\bsoftware\s+engineer\b`),
			regexp.MustCompile(`(?i)\bsenior\b`),
			regexp.MustCompile(`(?i)\bintern(ship)?\b`),
			regexp.MustCompile(`(?i)\beducation|graduation|college|university|cgpa|gpa\b`),
			regexp.MustCompile(`(?i)\bemail|phone|mobile|address|linkedin|github\b`),
		},
	}
}

// CompileNamePatterns compiles configured name expressions, skipping any that
// fail to compile so a bad pattern cannot take the service down.
func CompileNamePatterns(exprs []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		if e == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + e)
		if err != nil {
			continue
		}
		out = append(out, re)
	}
	return out
}
