package textutil

// SynonymTable maps a lowercased query token to related technical terms.
// The table is plain data so deployments and tests can swap it; the retrieval
// scorer receives it at construction time instead of reading a global.
type SynonymTable map[string][]string

// DefaultSynonyms returns the built-in technical-term expansion table.
func DefaultSynonyms() SynonymTable {
	return SynonymTable{
		"llm":            {"language model", "transformer", "gpt"},
		"rag":            {"retrieval augmented generation"},
		"embedding":      {"vector", "dense representation"},
		"vector":         {"embedding"},
		"chunk":          {"passage", "segment", "fragment"},
		"chunking":       {"splitting", "segmentation"},
		"retrieval":      {"search", "lookup"},
		"ranking":        {"scoring", "ordering"},
		"prompt":         {"instruction", "context window"},
		"token":          {"subword"},
		"latency":        {"response time", "delay"},
		"throughput":     {"requests per second", "capacity"},
		"finetuning":     {"fine tuning", "adaptation"},
		"lora":           {"low rank adaptation", "adapter"},
		"quantization":   {"compression", "int8"},
		"inference":      {"generation", "prediction"},
		"hallucination":  {"fabrication", "confabulation"},
		"grounding":      {"citation", "evidence"},
		"database":       {"storage", "datastore"},
		"sqlite":         {"embedded database"},
		"cache":          {"memoization"},
		"api":            {"endpoint", "interface"},
		"http":           {"rest", "endpoint"},
		"json":           {"payload", "serialization"},
		"auth":           {"authentication", "credential"},
		"deploy":         {"release", "rollout"},
		"deployment":     {"release", "rollout"},
		"container":      {"docker", "image"},
		"kubernetes":     {"k8s", "orchestration"},
		"scaling":        {"autoscaling", "capacity"},
		"monitoring":     {"observability", "telemetry"},
		"logging":        {"tracing", "observability"},
		"testing":        {"unit test", "validation"},
		"concurrency":    {"parallelism", "goroutine"},
		"transformer":    {"attention", "language model"},
		"classification": {"labeling", "categorization"},
	}
}

// ExpansionTerms returns the synonym expansions for the given query tokens,
// excluding any expansion whose stemmed words are all already present in the
// query itself. The result is the "expansion-only" vocabulary the scorer
// credits when found in a chunk.
func (t SynonymTable) ExpansionTerms(queryTokens []string) []string {
	if len(t) == 0 || len(queryTokens) == 0 {
		return nil
	}

	queryStems := make(map[string]struct{}, len(queryTokens))
	for _, tok := range queryTokens {
		queryStems[Stem(tok)] = struct{}{}
	}

	var out []string
	seen := make(map[string]struct{})
	for _, tok := range queryTokens {
		for _, term := range t[tok] {
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}

			novel := false
			for _, word := range Tokenize(term) {
				if _, ok := queryStems[Stem(word)]; !ok {
					novel = true
					break
				}
			}
			if novel {
				out = append(out, term)
			}
		}
	}
	return out
}
