package taxa

import (
	"log/slog"
	"regexp"
	"strings"
)

// MakingClassification is the Making-Detector's coarse verdict (§4.14).
type MakingClassification string

const (
	MakingYes        MakingClassification = "making"
	MakingNo         MakingClassification = "not_making"
	MakingUncertain  MakingClassification = "uncertain"
)

// MakingVerdict is the Making-Detector's output for one law.
type MakingVerdict struct {
	Classification MakingClassification
	Confidence     float64
}

var makingTitleSignal = regexp.MustCompile(`(?i)\bregulations\b|\border\b|\bduties\b|\brequirements\b`)
var nonMakingTitleSignal = regexp.MustCompile(`(?i)\(amendment\)|\(revocation\)|\(commencement`)

// DetectMaking is a lightweight pre-filter run immediately after the
// metadata stage completes, before taxa classification exists to check
// against (§4.14).
func DetectMaking(title, description string, bodyParas, scheduleParas, attachmentParas int) MakingVerdict {
	score := 0.5

	if nonMakingTitleSignal.MatchString(title) {
		score -= 0.3
	}
	if makingTitleSignal.MatchString(title) {
		score += 0.2
	}
	if strings.Contains(strings.ToLower(description), "duty") || strings.Contains(strings.ToLower(description), "requirement") {
		score += 0.15
	}
	substantial := bodyParas + scheduleParas + attachmentParas
	switch {
	case substantial == 0:
		score -= 0.2
	case substantial > 20:
		score += 0.15
	}

	switch {
	case score >= 0.65:
		return MakingVerdict{MakingYes, clamp(score)}
	case score <= 0.35:
		return MakingVerdict{MakingNo, clamp(1 - score)}
	default:
		return MakingVerdict{MakingUncertain, clamp(1 - absDiff(score, 0.5)*2)}
	}
}

func clamp(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

// ReconcileMakingVerdict compares the Making-Detector's pre-filter output
// against the taxa stage's actual is_making truth, logging false negatives
// at warning and false positives at info; agreement and uncertain verdicts
// are silent (§4.14).
func ReconcileMakingVerdict(logger *slog.Logger, lawName string, verdict MakingVerdict, isMaking bool) {
	switch verdict.Classification {
	case MakingNo:
		if isMaking {
			logger.Warn("making-detector false negative", "law_name", lawName, "confidence", verdict.Confidence)
		}
	case MakingYes:
		if !isMaking {
			logger.Info("making-detector false positive", "law_name", lawName, "confidence", verdict.Confidence)
		}
	}
}
