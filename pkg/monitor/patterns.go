package monitor

// PatternSet holds the heuristic phrase lists used by the classifier. The
// lists are data, not code: callers can append to a copy without touching
// the detection logic, and pages carry their own soft-404 override list.
type PatternSet struct {
	// Soft404Phrases are matched case-insensitively against the body
	Soft404Phrases []string
	// ErrorPaths mark request paths that look like error routes
	ErrorPaths []string
	// ChallengeMarkers identify bot-protection and CAPTCHA interstitials
	ChallengeMarkers []string
	// BlockURLHints are substrings of block-page redirect targets
	BlockURLHints []string
}

// DefaultPatterns returns the built-in multilingual pattern lists.
func DefaultPatterns() *PatternSet {
	return &PatternSet{
		Soft404Phrases: []string{
			"page not found",
			"404 not found",
			"404 error",
			"error 404",
			"not found",
			"the page you requested could not be found",
			"the page you are looking for",
			"this page doesn't exist",
			"página não encontrada",
			"pagina nao encontrada",
			"página no encontrada",
			"erro 404",
			"não encontrado",
			"nao encontrado",
			"conteúdo não encontrado",
			"conteudo nao encontrado",
			"a página que você procura",
			"a pagina que voce procura",
		},
		ErrorPaths: []string{
			"/404",
			"/not-found",
			"/notfound",
			"/error",
			"/erro",
			"/pagina-nao-encontrada",
			"/nao-encontrado",
		},
		ChallengeMarkers: []string{
			"checking your browser",
			"attention required",
			"ray id",
			"cf-challenge",
			"just a moment",
			"enable javascript and cookies",
			"ddos protection",
			"verifying you are human",
			"verify you are human",
			"bot verification",
			"perimeterx",
			"px-captcha",
			"access denied",
			"request unsuccessful. incapsula",
		},
		BlockURLHints: []string{
			"blocked",
			"captcha",
			"challenge",
			"denied",
		},
	}
}

// WithSoft404Phrases returns a shallow copy with extra soft-404 phrases
// appended.
func (p *PatternSet) WithSoft404Phrases(extra ...string) *PatternSet {
	out := *p
	out.Soft404Phrases = append(append([]string{}, p.Soft404Phrases...), extra...)
	return &out
}
