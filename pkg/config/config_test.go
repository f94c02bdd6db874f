package config_test

import (
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/strandhq/strand/pkg/config"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Config Suite")
}

var _ = Describe("Configer", func() {
	var (
		dir   string
		cfger *config.Configer
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()

		var err error
		cfger, err = config.NewConfiger(dir)
		Expect(err).NotTo(HaveOccurred())
	})

	It("loads defaults when no config file exists", func() {
		cfg, err := cfger.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Storage.Driver).To(Equal("inmemory"))
		Expect(cfg.API.Listen).To(Equal(":8080"))
	})

	It("round-trips a saved config", func() {
		cfg, err := cfger.Load()
		Expect(err).NotTo(HaveOccurred())

		cfg.Storage.Driver = "sqlite"
		cfg.Storage.SQLitePath = "/tmp/strand.db"
		Expect(cfger.Save(cfg)).To(Succeed())

		reloaded, err := cfger.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(reloaded.Storage.Driver).To(Equal("sqlite"))
		Expect(reloaded.Storage.SQLitePath).To(Equal("/tmp/strand.db"))
	})

	It("writes config.toml into the resolved directory", func() {
		cfg, err := cfger.Load()
		Expect(err).NotTo(HaveOccurred())
		Expect(cfger.Save(cfg)).To(Succeed())

		_, err = os.Stat(filepath.Join(dir, "config.toml"))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Get and Set", func() {
		It("sets and gets dotted keys", func() {
			Expect(cfger.Set("api.listen", ":9090")).To(Succeed())
			Expect(cfger.Get("api.listen")).To(Equal(":9090"))
		})

		It("rejects unknown keys", func() {
			Expect(cfger.Set("nope.nope", "x")).To(HaveOccurred())

			_, err := cfger.Get("nope.nope")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("ValidConfigKeys", func() {
		It("lists all keys sorted", func() {
			Expect(config.ValidConfigKeys()).To(Equal([]string{
				"api.listen",
				"storage.driver",
				"storage.postgres_dsn",
				"storage.sqlite_path",
			}))
		})
	})
})

var _ = Describe("InitViper", func() {
	It("applies defaults when no file is present", func() {
		v, err := config.InitViper(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())
		Expect(v.GetString("api.listen")).To(Equal(":8080"))
		Expect(v.GetString("storage.driver")).To(Equal("inmemory"))
	})

	It("reads values from config.toml", func() {
		dir := GinkgoT().TempDir()
		data := []byte("[api]\nlisten = \":7070\"\n")
		Expect(os.WriteFile(filepath.Join(dir, "config.toml"), data, 0o644)).To(Succeed())

		v, err := config.InitViper(dir)
		Expect(err).NotTo(HaveOccurred())
		Expect(v.GetString("api.listen")).To(Equal(":7070"))
	})

	It("prefers environment variables over file values", func() {
		GinkgoT().Setenv("STRAND_API_LISTEN", ":6060")

		v, err := config.InitViper(GinkgoT().TempDir())
		Expect(err).NotTo(HaveOccurred())
		Expect(v.GetString("api.listen")).To(Equal(":6060"))
	})
})
