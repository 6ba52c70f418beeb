// Package testdata is the fixture corpus the conformance CLI (cmd/parse5
// conform) and package tests run against: a small, hand-authored stand-in
// for a generated html5lib tokenizer-test corpus, with the #data/#errors/
// #tokens split already resolved into native Go values (spec.md §9).
package testdata

import (
	"github.com/TheRakeshPurohit/parse5/htmltest"
	"github.com/TheRakeshPurohit/parse5/tokenizer"
)

var Fixtures = []htmltest.Fixture{
	{
		Name:  "plain-element",
		Input: `<p class="a">hi</p>`,
		Expected: []htmltest.ExpectedToken{
			{Kind: tokenizer.StartTagToken, Name: "p"},
			{Kind: tokenizer.CharacterToken, Chars: "hi"},
			{Kind: tokenizer.EndTagToken, Name: "p"},
			{Kind: tokenizer.EOFTokenKind},
		},
	},
	{
		Name:  "self-closing-void-tag",
		Input: `<br/>`,
		Expected: []htmltest.ExpectedToken{
			{Kind: tokenizer.StartTagToken, Name: "br"},
			{Kind: tokenizer.EOFTokenKind},
		},
	},
	{
		Name:  "doctype-and-comment",
		Input: `<!DOCTYPE html><!-- hello -->`,
		Expected: []htmltest.ExpectedToken{
			{Kind: tokenizer.DoctypeToken, Name: "html"},
			{Kind: tokenizer.CommentToken, Comment: " hello "},
			{Kind: tokenizer.EOFTokenKind},
		},
	},
	{
		Name:  "named-character-reference",
		Input: `a &amp; b`,
		Expected: []htmltest.ExpectedToken{
			{Kind: tokenizer.CharacterToken, Chars: "a"},
			{Kind: tokenizer.CharacterToken, Chars: " "},
			{Kind: tokenizer.CharacterToken, Chars: "&"},
			{Kind: tokenizer.CharacterToken, Chars: " "},
			{Kind: tokenizer.CharacterToken, Chars: "b"},
			{Kind: tokenizer.EOFTokenKind},
		},
	},
	{
		Name:  "decimal-numeric-character-reference",
		Input: `&#65;`,
		Expected: []htmltest.ExpectedToken{
			{Kind: tokenizer.CharacterToken, Chars: "A"},
			{Kind: tokenizer.EOFTokenKind},
		},
	},
	{
		Name:  "null-character-in-data",
		Input: "a\x00b",
		Expected: []htmltest.ExpectedToken{
			{Kind: tokenizer.CharacterToken, Chars: "a"},
			{Kind: tokenizer.CharacterToken, Chars: "\x00"},
			{Kind: tokenizer.CharacterToken, Chars: "b"},
			{Kind: tokenizer.EOFTokenKind},
		},
	},
}
