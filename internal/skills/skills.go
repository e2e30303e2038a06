package skills

import (
	"regexp"
	"strings"
)

type keyword struct {
	name    string
	pattern *regexp.Regexp
}

// Patterns run against lowercased text; word boundaries keep e.g. "java"
// from matching inside "javascript".
var vocabulary = []keyword{
	{"Python", regexp.MustCompile(`\bpython\b`)},
	{"SQL", regexp.MustCompile(`\bsql\b`)},
	{"Java", regexp.MustCompile(`\bjava\b`)},
	{"JavaScript", regexp.MustCompile(`\b(javascript|js)\b`)},
	{"TypeScript", regexp.MustCompile(`\btypescript\b`)},
	{"C++", regexp.MustCompile(`\bc\+\+`)},
	{"C#", regexp.MustCompile(`\bc#|\bcsharp\b`)},
	{"PHP", regexp.MustCompile(`\bphp\b`)},
	{"Go", regexp.MustCompile(`\bgolang\b`)},
	{"VBA", regexp.MustCompile(`\bvba\b`)},
	{"React", regexp.MustCompile(`\breact(\.js)?\b`)},
	{"Angular", regexp.MustCompile(`\bangular\b`)},
	{"Vue.js", regexp.MustCompile(`\bvue(\.js)?\b`)},
	{"Spring Boot", regexp.MustCompile(`\bspring\s?boot\b`)},
	{"Django", regexp.MustCompile(`\bdjango\b`)},
	{"Flask", regexp.MustCompile(`\bflask\b`)},
	{"FastAPI", regexp.MustCompile(`\bfastapi\b`)},
	{"Pandas", regexp.MustCompile(`\bpandas\b`)},
	{"NumPy", regexp.MustCompile(`\bnumpy\b`)},
	{"Scikit-Learn", regexp.MustCompile(`\bscikit-learn\b|\bsklearn\b`)},
	{"TensorFlow", regexp.MustCompile(`\btensorflow\b`)},
	{"PyTorch", regexp.MustCompile(`\bpytorch\b`)},
	{"Spark", regexp.MustCompile(`\bspark\b`)},
	{"Hadoop", regexp.MustCompile(`\bhadoop\b`)},
	{"Airflow", regexp.MustCompile(`\bairflow\b`)},
	{"Docker", regexp.MustCompile(`\bdocker\b`)},
	{"Kubernetes", regexp.MustCompile(`\bkubernetes\b|\bk8s\b`)},
	{"AWS", regexp.MustCompile(`\baws\b|\bamazon web services\b`)},
	{"Azure", regexp.MustCompile(`\bazure\b`)},
	{"GCP", regexp.MustCompile(`\bgcp\b|\bgoogle cloud\b`)},
	{"Git", regexp.MustCompile(`\bgit\b`)},
	{"Jenkins", regexp.MustCompile(`\bjenkins\b`)},
	{"Terraform", regexp.MustCompile(`\bterraform\b`)},
	{"Snowflake", regexp.MustCompile(`\bsnowflake\b`)},
	{"Databricks", regexp.MustCompile(`\bdatabricks\b`)},
	{"Power BI", regexp.MustCompile(`\bpower\s?bi\b`)},
	{"Tableau", regexp.MustCompile(`\btableau\b`)},
	{"Excel", regexp.MustCompile(`\bexcel\b`)},
	{"Machine Learning", regexp.MustCompile(`\bmachine learning\b|\bml\b`)},
	{"Deep Learning", regexp.MustCompile(`\bdeep learning\b|\bdl\b`)},
	{"NLP", regexp.MustCompile(`\bnlp\b|\bnatural language processing\b`)},
	{"Big Data", regexp.MustCompile(`\bbig data\b`)},
	{"DevOps", regexp.MustCompile(`\bdevops\b`)},
	{"Agile", regexp.MustCompile(`\bagile\b|\bscrum\b`)},
}

// Extract scans free text against the skill vocabulary and returns the
// unique skill names found, in vocabulary order.
func Extract(text string) []string {
	cleaned := normalizeText(text)
	if cleaned == "" {
		return nil
	}

	var found []string
	for _, kw := range vocabulary {
		if kw.pattern.MatchString(cleaned) {
			found = append(found, kw.name)
		}
	}
	return found
}

func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.ToLower(strings.TrimSpace(text))
}
