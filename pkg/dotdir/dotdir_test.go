package dotdir_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/strandhq/strand/pkg/dotdir"
)

func TestDotdir(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dotdir Suite")
}

var _ = Describe("Target", func() {
	It("uses the override directory when provided", func() {
		dir := GinkgoT().TempDir()
		override := filepath.Join(dir, "custom")

		target, err := dotdir.Target(override)
		Expect(err).NotTo(HaveOccurred())
		Expect(target).To(Equal(override))

		info, err := os.Stat(target)
		Expect(err).NotTo(HaveOccurred())
		Expect(info.IsDir()).To(BeTrue())
	})

	It("creates the override directory if missing", func() {
		dir := GinkgoT().TempDir()
		override := filepath.Join(dir, "nested", "deeper")

		target, err := dotdir.Target(override)
		Expect(err).NotTo(HaveOccurred())
		Expect(target).To(BeADirectory())
	})
})
