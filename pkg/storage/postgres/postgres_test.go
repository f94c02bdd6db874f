package postgres_test

import (
	"context"
	"errors"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/strandhq/strand/pkg/record"
	"github.com/strandhq/strand/pkg/storage"
	"github.com/strandhq/strand/pkg/storage/postgres"
)

func TestPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Postgres Storage Suite")
}

// connStr returns the PostgreSQL connection string from environment or skips the test.
func connStr() string {
	dsn := os.Getenv("STRAND_TEST_POSTGRES_DSN")
	if dsn == "" {
		Skip("STRAND_TEST_POSTGRES_DSN not set, skipping PostgreSQL tests")
	}
	return dsn
}

var _ = Describe("Driver", func() {
	var (
		driver *postgres.Driver
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		dsn := connStr()

		var err error
		driver, err = postgres.NewDriver(ctx, dsn)
		Expect(err).NotTo(HaveOccurred())

		// Clean all records before each test for isolation.
		records, err := driver.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		for _, rec := range records {
			Expect(driver.Delete(ctx, rec.ID)).To(Succeed())
		}
	})

	AfterEach(func() {
		if driver != nil {
			driver.Close()
		}
	})

	It("round-trips a record with its full property set", func() {
		rec := record.New("level up")
		Expect(driver.Put(ctx, rec)).To(Succeed())

		got, err := driver.Get(ctx, rec.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.Value).To(Equal("level up"))
		Expect(got.Properties.WordCount).To(Equal(2))
		Expect(got.Properties.SHA256Hash).To(Equal(rec.ID))
	})

	It("rejects duplicate ids with ConflictError", func() {
		Expect(driver.Put(ctx, record.New("abc"))).To(Succeed())

		err := driver.Put(ctx, record.New("abc"))
		var conflict storage.ConflictError
		Expect(errors.As(err, &conflict)).To(BeTrue())
	})

	It("returns NotFoundError for unknown ids", func() {
		_, err := driver.Get(ctx, "nonexistent")

		var notFound storage.NotFoundError
		Expect(errors.As(err, &notFound)).To(BeTrue())
	})

	It("deletes records", func() {
		rec := record.New("abc")
		Expect(driver.Put(ctx, rec)).To(Succeed())
		Expect(driver.Delete(ctx, rec.ID)).To(Succeed())

		var notFound storage.NotFoundError
		Expect(errors.As(driver.Delete(ctx, rec.ID), &notFound)).To(BeTrue())
	})

	It("lists records in insertion order", func() {
		for _, v := range []string{"first", "second"} {
			Expect(driver.Put(ctx, record.New(v))).To(Succeed())
		}

		records, err := driver.List(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(records).To(HaveLen(2))
		Expect(records[0].Value).To(Equal("first"))
	})
})
