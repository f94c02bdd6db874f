package analyze_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/strandhq/strand/pkg/analyze"
)

func TestAnalyze(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Analyze Suite")
}

var _ = Describe("Analyze", func() {
	It("computes the full property set for a simple word", func() {
		props := analyze.Analyze("level")

		Expect(props.Length).To(Equal(5))
		Expect(props.IsPalindrome).To(BeTrue())
		Expect(props.UniqueCharacters).To(Equal(3))
		Expect(props.WordCount).To(Equal(1))
		Expect(props.CharacterFrequencyMap).To(Equal(map[string]int{
			"l": 2, "e": 2, "v": 1,
		}))
	})

	It("treats the empty string as a zero-length palindrome", func() {
		props := analyze.Analyze("")

		Expect(props.Length).To(Equal(0))
		Expect(props.IsPalindrome).To(BeTrue())
		Expect(props.UniqueCharacters).To(Equal(0))
		Expect(props.WordCount).To(Equal(0))
		Expect(props.CharacterFrequencyMap).To(BeEmpty())
	})

	Describe("palindrome detection", func() {
		It("is case-insensitive", func() {
			Expect(analyze.Analyze("Racecar").IsPalindrome).To(BeTrue())
		})

		It("rejects non-palindromes", func() {
			Expect(analyze.Analyze("hello").IsPalindrome).To(BeFalse())
		})

		It("is sensitive to whitespace", func() {
			Expect(analyze.Analyze("ab a").IsPalindrome).To(BeFalse())
			Expect(analyze.Analyze("a b a").IsPalindrome).To(BeTrue())
		})
	})

	Describe("word counting", func() {
		It("splits on runs of whitespace", func() {
			Expect(analyze.Analyze("  hello   world ").WordCount).To(Equal(2))
		})

		It("counts an all-whitespace value as zero words", func() {
			Expect(analyze.Analyze("   \t\n").WordCount).To(Equal(0))
		})
	})

	Describe("unicode handling", func() {
		It("counts code points rather than bytes", func() {
			props := analyze.Analyze("héllo")

			Expect(props.Length).To(Equal(5))
			Expect(props.CharacterFrequencyMap).To(HaveKeyWithValue("é", 1))
		})

		It("sums frequency counts to the length", func() {
			for _, value := range []string{"héllo", "a b a", "日本語日本", "Racecar"} {
				props := analyze.Analyze(value)
				total := 0
				for _, n := range props.CharacterFrequencyMap {
					total += n
				}
				Expect(total).To(Equal(props.Length), "value %q", value)
			}
		})
	})

	Describe("frequency map", func() {
		It("keeps case-distinct characters separate", func() {
			props := analyze.Analyze("Aa")

			Expect(props.CharacterFrequencyMap).To(Equal(map[string]int{"A": 1, "a": 1}))
			Expect(props.UniqueCharacters).To(Equal(2))
		})

		It("counts whitespace characters", func() {
			Expect(analyze.Analyze("a a").CharacterFrequencyMap).To(HaveKeyWithValue(" ", 1))
		})
	})
})

var _ = Describe("Identity", func() {
	It("is deterministic", func() {
		Expect(analyze.Identity("abc")).To(Equal(analyze.Identity("abc")))
	})

	It("produces a 64-character lowercase hex digest", func() {
		id := analyze.Identity("abc")

		Expect(id).To(HaveLen(64))
		Expect(id).To(MatchRegexp(`^[0-9a-f]{64}$`))
		// Known SHA-256 of "abc"
		Expect(id).To(Equal("ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"))
	})

	It("distinguishes case and whitespace variants", func() {
		Expect(analyze.Identity("abc")).NotTo(Equal(analyze.Identity("Abc")))
		Expect(analyze.Identity("abc")).NotTo(Equal(analyze.Identity("abc ")))
	})

	It("matches the hash in the analyzed properties", func() {
		Expect(analyze.Analyze("abc").SHA256Hash).To(Equal(analyze.Identity("abc")))
	})
})
