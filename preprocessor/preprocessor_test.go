package preprocessor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(p *Preprocessor) (cps []int32, locs []Location) {
	for {
		cp := p.Advance()
		if cp == EOF {
			if p.EndOfChunkHit() {
				return
			}
			cps = append(cps, cp)
			locs = append(locs, p.GetLocation())
			return
		}
		cps = append(cps, cp)
		locs = append(locs, p.GetLocation())
	}
}

func TestAdvanceBasic(t *testing.T) {
	p := New("x")
	p.Write("ab", true)

	cps, locs := collect(p)
	require.Len(t, cps, 3) // 'a', 'b', EOF
	assert.Equal(t, []int32{'a', 'b', EOF}, cps)
	assert.Equal(t, 0, locs[0].Col)
	assert.Equal(t, 1, locs[1].Col)
	assert.Equal(t, 1, locs[0].Line)
}

func TestCRLFCollapsing(t *testing.T) {
	// "a\r\nb\rc\nd" -> codepoints a \n b \n c \n d (CRLF fused into one
	// LF, and CR alone normalized to LF), with b/c/d starting lines
	// 2/3/4 at column 0, per spec.md scenario 4.
	test := func(name, input string) func(t *testing.T) {
		return func(t *testing.T) {
			p := New("x")
			p.Write(input, true)

			var got []int32
			var lines []int
			var cols []int
			for {
				cp := p.Advance()
				if cp == EOF {
					break
				}
				got = append(got, cp)
				lines = append(lines, p.GetLocation().Line)
				cols = append(cols, p.GetLocation().Col)
			}
			assert.Equal(t, []int32{'a', '\n', 'b', '\n', 'c', '\n', 'd'}, got)
			assert.Equal(t, []int{1, 1, 2, 2, 3, 3, 4}, lines)
			assert.Equal(t, []int{0, 1, 0, 1, 0, 1, 0}, cols)
		}
	}
	t.Run("crlf+cr+lf", test("", "a\r\nb\rc\nd"))
}

func TestRetreatRoundTrip(t *testing.T) {
	p := New("x")
	p.Write("a\r\nbc", true)

	var cps []int32
	var locs []Location
	for i := 0; i < 4; i++ {
		cp := p.Advance()
		cps = append(cps, cp)
		locs = append(locs, p.GetLocation())
	}

	p.Retreat(4)

	for i := 0; i < 4; i++ {
		cp := p.Advance()
		loc := p.GetLocation()
		assert.Equal(t, cps[i], cp, "codepoint %d", i)
		assert.Equal(t, locs[i], loc, "location %d", i)
	}
}

func TestSurrogatePairCombination(t *testing.T) {
	p := New("x")
	// U+1F600 GRINNING FACE, encoded as a surrogate pair.
	p.Write("\U0001F600", true)

	cp := p.Advance()
	assert.Equal(t, int32(0x1F600), cp)
	// Offset reports the last UTF-16 code unit consumed by the pair.
	assert.Equal(t, 1, p.GetLocation().Offset)

	cp = p.Advance()
	assert.Equal(t, EOF, cp)
}

func TestIsolatedSurrogateReportsError(t *testing.T) {
	var errs []ParserError
	p := New("x")
	p.OnError = func(e ParserError) { errs = append(errs, e) }
	// string(rune(0xD800)) is "�" in Go, so Write cannot carry an
	// unpaired surrogate; the lone code unit is placed in the buffer
	// directly.
	p.Write("", true)
	p.html = append(p.html, 0xD800)

	cp := p.Advance()
	assert.Equal(t, int32(0xD800), cp)
	require.Len(t, errs, 1)
	assert.Equal(t, "surrogateInInputStream", errs[0].Code)

	// Advancing/retreating across the same offset must not re-report.
	p.Retreat(1)
	p.Advance()
	assert.Len(t, errs, 1)
}

func TestEndOfChunkHitAndResume(t *testing.T) {
	p := New("x")
	p.Write("ab", false)

	assert.Equal(t, int32('a'), p.Advance())
	assert.Equal(t, int32('b'), p.Advance())
	cp := p.Advance()
	assert.Equal(t, EOF, cp)
	assert.True(t, p.EndOfChunkHit())

	p.Write("c", true)
	cp = p.Advance()
	assert.Equal(t, int32('c'), cp)
	assert.False(t, p.EndOfChunkHit())

	cp = p.Advance()
	assert.Equal(t, EOF, cp)
	assert.False(t, p.EndOfChunkHit())
}

func TestInsertHTMLAtCurrentPos(t *testing.T) {
	p := New("x")
	p.Write("ac", true)

	assert.Equal(t, int32('a'), p.Advance())
	p.InsertHTMLAtCurrentPos("b")
	assert.Equal(t, int32('b'), p.Advance())
	assert.Equal(t, int32('c'), p.Advance())
	assert.Equal(t, EOF, p.Advance())
}

func TestStartsWith(t *testing.T) {
	p := New("x")
	p.Write("<!DOCTYPE html>", true)
	p.Advance() // consume '<', cursor now on '<'

	assert.True(t, p.StartsWith("!doctype", false))
	assert.False(t, p.StartsWith("!doctype", true))
	assert.True(t, p.StartsWith("!DOCTYPE", true))
}

func TestDropParsedChunkKeepsOffsetsMonotone(t *testing.T) {
	p := New("x")
	p.bufferWaterline = 1
	p.Write("abcdef", true)

	p.Advance() // a, offset 0
	p.Advance() // b, offset 1
	p.Advance() // c, offset 2
	before := p.GetLocation()
	p.DropParsedChunk()
	after := p.GetLocation()
	assert.Equal(t, before.Offset, after.Offset)
	assert.Equal(t, before.Col, after.Col)

	assert.Equal(t, int32('d'), p.Advance())
	assert.Equal(t, 3, p.GetLocation().Offset)
}
