// Package editclassify turns a human edit of a draft into a labeled
// ML-feedback signal: the Levenshtein distance between the two versions and
// an EditType derived from it. All functions are pure and deterministic —
// downstream model training depends on identical inputs producing identical
// labels.
package editclassify

import (
	"regexp"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/replyflow/replyflow-backend/internal/domain"
)

var (
	hashtagRe = regexp.MustCompile(`#\w+`)
	mentionRe = regexp.MustCompile(`@\w+`)
)

// Classification thresholds. The rule order in Classify is load-bearing;
// these values only parameterize it.
const (
	rewriteRatio    = 0.7
	minorRatio      = 0.05
	toneRatio       = 0.3
	toneLengthDelta = 20
)

// Distance returns the Levenshtein distance between a and b: the minimum
// number of single-rune insertions, deletions, and substitutions needed to
// transform a into b.
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Classify assigns an EditType to the edit that turned original into
// edited, given their Levenshtein distance. Rules are evaluated strictly in
// order; later rules never override earlier ones:
//
//  1. edit ratio > 0.7                             → COMPLETE_REWRITE
//  2. hashtag or mention token count changed       → PLATFORM_FORMATTING
//  3. edit ratio < 0.05                            → MINOR_TWEAK
//  4. length delta < 20 and edit ratio < 0.3       → TONE_ADJUSTMENT
//  5. otherwise                                    → CONTENT_REVISION
//
// A full rewrite wins even when hashtags or mentions also changed.
func Classify(original, edited string, distance int) domain.EditType {
	origLen := utf8.RuneCountInString(original)
	editLen := utf8.RuneCountInString(edited)

	editRatio := float64(distance) / float64(max(origLen, 1))

	if editRatio > rewriteRatio {
		return domain.EditTypeCompleteRewrite
	}

	if CountHashtags(original) != CountHashtags(edited) ||
		CountMentions(original) != CountMentions(edited) {
		return domain.EditTypePlatformFormatting
	}

	if editRatio < minorRatio {
		return domain.EditTypeMinorTweak
	}

	lengthDelta := origLen - editLen
	if lengthDelta < 0 {
		lengthDelta = -lengthDelta
	}
	if lengthDelta < toneLengthDelta && editRatio < toneRatio {
		return domain.EditTypeToneAdjustment
	}

	return domain.EditTypeContentRevision
}

// CountHashtags returns the number of #hashtag tokens in s.
func CountHashtags(s string) int {
	return len(hashtagRe.FindAllString(s, -1))
}

// CountMentions returns the number of @mention tokens in s.
func CountMentions(s string) int {
	return len(mentionRe.FindAllString(s, -1))
}

// ExtractHashtags returns the #hashtag tokens in s, in order of occurrence.
func ExtractHashtags(s string) []string {
	return hashtagRe.FindAllString(s, -1)
}

// ExtractMentions returns the @mention tokens in s, in order of occurrence.
func ExtractMentions(s string) []string {
	return mentionRe.FindAllString(s, -1)
}
