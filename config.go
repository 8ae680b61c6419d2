package sieve

// Config holds the tunables of the pipeline.
type Config struct {
	// MinTokens and MaxTokens bound the accepted number of distinct tokens.
	MinTokens int
	MaxTokens int

	// SimilarityThreshold is the score above which a page is a near-duplicate.
	SimilarityThreshold float64

	// BlockLimit is the approximate number of bytes of text tokenized at once.
	BlockLimit int

	// AllowedFragments marks the crawl scope: a URL must contain at least one.
	AllowedFragments []string

	// BlockedExtensions lists file extensions (without the dot) never crawled.
	BlockedExtensions []string

	// StopWords are discarded by the tokenizer.
	StopWords []string
}

// Default configuration values.
const (
	DefaultMinTokens           = 50
	DefaultMaxTokens           = 1000
	DefaultSimilarityThreshold = 0.9
	DefaultBlockLimit          = 100 << 20
)

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		MinTokens:           DefaultMinTokens,
		MaxTokens:           DefaultMaxTokens,
		SimilarityThreshold: DefaultSimilarityThreshold,
		BlockLimit:          DefaultBlockLimit,
		AllowedFragments:    append([]string(nil), DefaultAllowedFragments...),
		BlockedExtensions:   append([]string(nil), DefaultBlockedExtensions...),
		StopWords:           append([]string(nil), EnglishStopWords...),
	}
}

// Validate returns an error if the configuration cannot drive a pipeline.
func (c *Config) Validate() error {
	if c.MinTokens < 0 {
		return Errorf(EINVALID, "min tokens must not be negative")
	}
	if c.MaxTokens < c.MinTokens {
		return Errorf(EINVALID, "max tokens %d below min tokens %d", c.MaxTokens, c.MinTokens)
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return Errorf(EINVALID, "similarity threshold %v outside (0, 1]", c.SimilarityThreshold)
	}
	if c.BlockLimit <= 0 {
		return Errorf(EINVALID, "block limit must be positive")
	}
	if len(c.AllowedFragments) == 0 {
		return Errorf(EINVALID, "at least one allowed fragment required")
	}
	return nil
}

// DefaultAllowedFragments scopes the crawl to the UCI information and
// computer sciences sites.
var DefaultAllowedFragments = []string{
	".ics.uci.edu/",
	".cs.uci.edu/",
	".informatics.uci.edu/",
	".stat.uci.edu/",
	"today.uci.edu/department/information_computer_sciences/",
}

// DefaultBlockedExtensions lists non-HTML resources.
var DefaultBlockedExtensions = []string{
	"css", "js", "bmp", "gif", "jpeg", "jpg", "ico",
	"png", "tiff", "tif", "mid", "mp2", "mp3", "mp4",
	"wav", "avi", "mov", "mpeg", "ram", "m4v", "mkv", "ogg", "ogv", "pdf",
	"ps", "eps", "tex", "ppt", "pptx", "doc", "docx", "xls", "xlsx", "names",
	"data", "dat", "exe", "bz2", "tar", "msi", "bin", "7z", "psd", "dmg", "iso",
	"epub", "dll", "cnf", "tgz", "sha1",
	"thmx", "mso", "arff", "rtf", "jar", "csv",
	"rm", "smil", "wmv", "swf", "wma", "zip", "rar", "gz",
	"ppsx",
}

// EnglishStopWords is the NLTK English stop-word list.
var EnglishStopWords = []string{
	"i", "me", "my", "myself", "we", "our", "ours", "ourselves", "you", "you're",
	"you've", "you'll", "you'd", "your", "yours", "yourself", "yourselves", "he",
	"him", "his", "himself", "she", "she's", "her", "hers", "herself", "it", "it's",
	"its", "itself", "they", "them", "their", "theirs", "themselves", "what", "which",
	"who", "whom", "this", "that", "that'll", "these", "those", "am", "is", "are",
	"was", "were", "be", "been", "being", "have", "has", "had", "having", "do",
	"does", "did", "doing", "a", "an", "the", "and", "but", "if", "or", "because",
	"as", "until", "while", "of", "at", "by", "for", "with", "about", "against",
	"between", "into", "through", "during", "before", "after", "above", "below",
	"to", "from", "up", "down", "in", "out", "on", "off", "over", "under", "again",
	"further", "then", "once", "here", "there", "when", "where", "why", "how", "all",
	"any", "both", "each", "few", "more", "most", "other", "some", "such", "no",
	"nor", "not", "only", "own", "same", "so", "than", "too", "very", "s", "t",
	"can", "will", "just", "don", "don't", "should", "should've", "now", "d", "ll",
	"m", "o", "re", "ve", "y", "ain", "aren", "aren't", "couldn", "couldn't",
	"didn", "didn't", "doesn", "doesn't", "hadn", "hadn't", "hasn", "hasn't",
	"haven", "haven't", "isn", "isn't", "ma", "mightn", "mightn't", "mustn",
	"mustn't", "needn", "needn't", "shan", "shan't", "shouldn", "shouldn't", "wasn",
	"wasn't", "weren", "weren't", "won", "won't", "wouldn", "wouldn't",
}
