// Package symptoms maps free-text symptom descriptions to candidate
// conditions. It is a fixed lookup table with light linguistic
// normalization, not a classifier: no ranking, no severity weighting. The
// output is a hint for the intake conversation, not medical advice.
package symptoms

import (
	"sort"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"

	"github.com/clinova/intake/pkg/logging"
)

// tokenConditions maps a normalized symptom token to candidate conditions.
var tokenConditions = map[string][]string{
	"fever":     {"Viral Infection", "Bacterial Infection", "Flu"},
	"headache":  {"Migraine", "Tension Headache", "Sinusitis"},
	"cough":     {"Common Cold", "Bronchitis", "Pneumonia"},
	"blocked":   {"Common Cold", "Allergic Rhinitis", "Sinusitis"},
	"nose":      {"Common Cold", "Allergic Rhinitis", "Sinusitis"},
	"sore":      {"Viral Pharyngitis", "Strep Throat", "Common Cold"},
	"throat":    {"Viral Pharyngitis", "Strep Throat", "Common Cold"},
	"body":      {"Flu", "Viral Infection", "Muscle Strain"},
	"pain":      {"Flu", "Viral Infection", "Muscle Strain"},
	"nausea":    {"Food Poisoning", "Gastroenteritis", "Migraine"},
	"vomiting":  {"Food Poisoning", "Gastroenteritis", "Viral Infection"},
	"diarrhea":  {"Food Poisoning", "Gastroenteritis", "IBS"},
	"fatigue":   {"Viral Infection", "Anemia", "Chronic Fatigue"},
	"chest":     {"Acid Reflux", "Muscle Strain", "Anxiety"},
	"shortness": {"Asthma", "Anxiety", "Respiratory Infection"},
	"breath":    {"Asthma", "Anxiety", "Respiratory Infection"},
	"cold":      {"Common Cold", "Viral Infection"},
	"runny":     {"Common Cold", "Allergic Rhinitis"},
	"sneezing":  {"Common Cold", "Allergic Rhinitis"},
	"weakness":  {"Viral Infection", "Anemia", "Dehydration"},
}

// phraseRule matches a multi-word phrase in the raw lower-cased text,
// independent of tokenization.
type phraseRule struct {
	tag        string
	phrases    []string
	conditions []string
}

var phraseRules = []phraseRule{
	{
		tag:        "blocked_nose",
		phrases:    []string{"blocked nose", "stuffy nose"},
		conditions: []string{"Common Cold", "Allergic Rhinitis", "Sinusitis"},
	},
	{
		tag:        "sore_throat",
		phrases:    []string{"sore throat"},
		conditions: []string{"Viral Pharyngitis", "Strep Throat", "Common Cold"},
	},
	{
		tag:        "body_pain",
		phrases:    []string{"body pain", "body ache"},
		conditions: []string{"Flu", "Viral Infection", "Muscle Strain"},
	},
}

var stopwords = buildStopwords()

func buildStopwords() map[string]struct{} {
	words := []string{
		"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you",
		"your", "yours", "yourself", "yourselves", "he", "him", "his",
		"himself", "she", "her", "hers", "herself", "it", "its", "itself",
		"they", "them", "their", "theirs", "themselves", "what", "which",
		"who", "whom", "this", "that", "these", "those", "am", "is", "are",
		"was", "were", "be", "been", "being", "have", "has", "had", "having",
		"do", "does", "did", "doing", "a", "an", "the", "and", "but", "if",
		"or", "because", "as", "until", "while", "of", "at", "by", "for",
		"with", "through", "during", "before", "after", "above", "below",
		"up", "down", "in", "out", "on", "off", "over", "under", "again",
		"further", "then", "once",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Result is the outcome of analyzing a symptom list.
type Result struct {
	// Matched holds de-duplicated symptom tags in first-seen order.
	Matched []string
	// Conditions holds the de-duplicated candidate condition set, sorted
	// for deterministic rendering. Order carries no meaning.
	Conditions []string
}

// Analyzer normalizes symptom text and looks up candidate conditions.
type Analyzer struct {
	lemmatizer *golem.Lemmatizer // nil in degraded mode
	logger     *logging.Logger
}

// New builds an analyzer. Lemmatizer construction failure degrades to
// raw-token matching instead of failing.
func New(logger *logging.Logger) *Analyzer {
	if logger == nil {
		logger = logging.Default()
	}
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		logger.Warn("symptoms: lemmatizer unavailable, matching raw tokens", "error", err)
		lemmatizer = nil
	}
	return &Analyzer{lemmatizer: lemmatizer, logger: logger}
}

// Analyze joins the accumulated symptom phrases, normalizes them and returns
// matched symptom tags plus the candidate condition set.
func (a *Analyzer) Analyze(symptomList []string) Result {
	blob := strings.ToLower(strings.Join(symptomList, " "))

	var matched []string
	seenTags := make(map[string]struct{})
	conditionSet := make(map[string]struct{})

	addTag := func(tag string, conditions []string) {
		if _, dup := seenTags[tag]; !dup {
			seenTags[tag] = struct{}{}
			matched = append(matched, tag)
		}
		for _, c := range conditions {
			conditionSet[c] = struct{}{}
		}
	}

	// Raw tokens are checked first because the table keys inflected forms
	// ("vomiting", "sneezing"); the lemma is a fallback that catches
	// variants the table does not list ("coughing" -> "cough").
	for _, token := range a.tokenize(blob) {
		if conditions, ok := tokenConditions[token]; ok {
			addTag(token, conditions)
			continue
		}
		if lemma := a.lemma(token); lemma != token {
			if conditions, ok := tokenConditions[lemma]; ok {
				addTag(lemma, conditions)
			}
		}
	}

	// Phrase matches fire on the raw text, independent of tokenization.
	for _, rule := range phraseRules {
		for _, phrase := range rule.phrases {
			if strings.Contains(blob, phrase) {
				addTag(rule.tag, rule.conditions)
				break
			}
		}
	}

	conditions := make([]string, 0, len(conditionSet))
	for c := range conditionSet {
		conditions = append(conditions, c)
	}
	sort.Strings(conditions)

	return Result{Matched: matched, Conditions: conditions}
}

// tokenize splits lower-cased text into alphabetic, non-stopword tokens.
func (a *Analyzer) tokenize(blob string) []string {
	fields := strings.Fields(blob)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		token := strings.Trim(field, ".,!?;:()\"'")
		if token == "" || !isAlpha(token) {
			continue
		}
		if _, stop := stopwords[token]; stop {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// lemma returns the token's base form, or the token itself in degraded mode.
func (a *Analyzer) lemma(token string) string {
	if a.lemmatizer == nil {
		return token
	}
	return strings.ToLower(a.lemmatizer.Lemma(token))
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
