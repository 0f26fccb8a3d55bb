package domain

// SkillVocabulary is the fixed, ordered list of skill and technology terms
// recognised in questions. Matching is a case-insensitive substring test, so
// short terms such as "ai" or "ml" also match inside longer words.
var SkillVocabulary = []string{
	"python", "java", "javascript", "ai", "ml", "machine learning",
	"deep learning", "data science", "web development", "cloud",
	"sql", "react", "angular", "node.js", "django", "flask",
	"artificial intelligence", "neural networks", "computer vision",
	"natural language processing", "big data", "hadoop", "spark",
	"docker", "kubernetes", "aws", "azure", "gcp", "devops",
	"c++", "c#", "php", "ruby", "swift", "kotlin", "scala",
	"tensorflow", "pytorch", "scikit-learn", "pandas", "numpy",
	"matplotlib", "seaborn", "plotly", "jupyter", "git", "github",
}

// SummaryVocabulary is the subset of terms counted by the summary report.
var SummaryVocabulary = []string{
	"python", "java", "javascript", "ai", "ml", "machine learning",
	"deep learning", "data science", "web development", "cloud",
	"sql", "react", "angular", "node.js", "django", "flask",
}

// EvidenceTriggers are phrases that mark a question as evidence-seeking.
// When one is present the answer is prefixed with a per-person breakdown.
var EvidenceTriggers = []string{
	"who has",
	"who knows",
	"who can",
	"find people",
	"people with",
	"who works with",
}

// TopSkillsLimit caps the number of skills reported by the summary.
const TopSkillsLimit = 10
