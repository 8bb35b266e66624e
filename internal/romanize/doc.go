// Package romanize is the romanization pipeline: it validates the language
// tag, detects the script of the text, checks that the two agree, and
// dispatches to the transliteration engines that handle the pair.
//
// Text written in zero or several scripts, or in a script other than the one
// its language tag implies, yields an empty result rather than an error; the
// decision is logged. Only an invalid tag and an engine producing non-Latin
// output are reported to the caller.
package romanize
