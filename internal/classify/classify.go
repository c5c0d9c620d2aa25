// Package classify implements the keyword-rule triage classifier for
// cybercrime complaints. It maps free complaint text to a crime
// category, a priority level, and a suggested handling unit.
//
// All tables are static package-level constants and every function is
// pure, so concurrent callers need no coordination.
package classify

import (
	"regexp"
	"strings"
)

// Category tags a complaint with one of the fixed crime categories.
type Category string

const (
	CategorySocialMediaHarassment Category = "Social Media Harassment"
	CategoryFinancialFraud        Category = "Online Financial Fraud / Phishing"
	CategoryIdentityTheft         Category = "Identity Theft / Account Takeover"
	CategoryCyberBullying         Category = "Cyber Bullying / Threats"
	CategoryJobScam               Category = "Job / Recruitment Scam"
	CategoryOther                 Category = "Other / General Cybercrime"
)

// Categories lists every category in scoring order. The order is
// load-bearing: when two categories tie on keyword score, the one
// earlier in this list wins.
var Categories = []Category{
	CategorySocialMediaHarassment,
	CategoryFinancialFraud,
	CategoryIdentityTheft,
	CategoryCyberBullying,
	CategoryJobScam,
	CategoryOther,
}

// Priority is the urgency level assigned to a complaint.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Rank returns the queue position of the priority. High sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Valid reports whether p is one of the three known priority levels.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Unit names the organizational unit a case is suggested to be routed to.
type Unit string

const (
	UnitHarassmentCell   Unit = "Women's Safety / Cyber Harassment Cell"
	UnitFinancialFraud   Unit = "Cyber Financial Fraud Unit"
	UnitInvestigation    Unit = "Cyber Crime Investigation Unit"
	UnitEconomicOffences Unit = "Economic Offences / Cyber Fraud Unit"
	UnitGeneralCell      Unit = "General Cyber Crime Cell"
)

// Result is the full triage decision for one complaint text.
type Result struct {
	Category Category `json:"category"`
	Priority Priority `json:"priority"`
	Unit     Unit     `json:"unit"`
}

// categoryKeywords holds the keyword phrases per category. Scoring
// iterates Categories, never this map, so tie-breaking stays stable.
// CategoryOther has no keywords; it is the fallback.
var categoryKeywords = map[Category][]string{
	CategorySocialMediaHarassment: {
		"instagram", "facebook", "twitter", "x.com", "snapchat",
		"social media", "profile", "story", "reel", "dm", "direct message",
		"troll", "abuse", "harass", "stalking", "stalker",
	},
	CategoryFinancialFraud: {
		"otp", "one time password", "bank", "upi", "gpay", "phonepe", "paytm",
		"credit card", "debit card", "loan", "kbc", "lottery", "prize",
		"fake link", "phishing", "fraud", "payment", "investment", "trading",
		"crypto", "bitcoin",
	},
	CategoryIdentityTheft: {
		"hacked", "account taken", "login", "password", "credential",
		"sim swap", "sim-swapping", "email hacked", "whatsapp hacked",
		"telegram hacked",
	},
	CategoryCyberBullying: {
		"threat", "blackmail", "morphed", "nude", "leak", "compromise",
		"insult", "abusive", "defame", "revenge porn",
	},
	CategoryJobScam: {
		"job offer", "placement", "recruitment", "hr", "work from home",
		"data entry", "typing job",
	},
	CategoryOther: {},
}

// Priority patterns match anywhere in the lowercased text, without word
// boundaries. That means substrings inside longer words match too
// ("grape" trips the "rape" pattern). This is deliberate and must not
// be tightened without revisiting the pinned classifier behavior.
var highPriorityPatterns = compilePatterns(
	"threaten", "blackmail", "kill", "murder", "revenge porn",
	"minor", "child", "rape", "sexual", "life in danger",
	"suicide", "extort", "extortion",
)

// The original rule set lacked a match for debit-style financial loss;
// "debited" is the one addition over the source tables.
var mediumPriorityPatterns = compilePatterns(
	"hacked", "account taken", "lost money", "withdrawn", "debited",
	"fraud", "phishing", "scam", "harass", "stalking",
)

func compilePatterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(e))
	}
	return out
}

// Classify runs the full triage decision for one complaint text.
func Classify(text string) Result {
	cat := ClassifyCategory(text)
	return Result{
		Category: cat,
		Priority: ClassifyPriority(text),
		Unit:     SuggestUnit(cat),
	}
}

// ClassifyCategory scores each category by how many of its keyword
// phrases occur in the lowercased text and returns the best match.
// Ties resolve to the category earliest in Categories; if nothing
// matches at all the result is CategoryOther.
func ClassifyCategory(text string) Category {
	lower := strings.ToLower(text)

	best := CategoryOther
	bestScore := 0
	for _, cat := range Categories {
		score := 0
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best = cat
			bestScore = score
		}
	}
	return best
}

// ClassifyPriority returns High if any high-priority pattern matches
// the lowercased text, else Medium if any medium pattern matches,
// else Low.
func ClassifyPriority(text string) Priority {
	lower := strings.ToLower(text)

	for _, p := range highPriorityPatterns {
		if p.MatchString(lower) {
			return PriorityHigh
		}
	}
	for _, p := range mediumPriorityPatterns {
		if p.MatchString(lower) {
			return PriorityMedium
		}
	}
	return PriorityLow
}

// SuggestUnit derives the handling unit from the category. Total over
// all categories; anything unrecognized routes to the general cell.
func SuggestUnit(cat Category) Unit {
	switch cat {
	case CategorySocialMediaHarassment, CategoryCyberBullying:
		return UnitHarassmentCell
	case CategoryFinancialFraud:
		return UnitFinancialFraud
	case CategoryIdentityTheft:
		return UnitInvestigation
	case CategoryJobScam:
		return UnitEconomicOffences
	default:
		return UnitGeneralCell
	}
}
