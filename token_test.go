package ofxconnect_test

import (
	"errors"
	"io"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/ginkgo/extensions/table"
	. "github.com/onsi/gomega"

	"github.com/rockstardevs/ofxconnect"
)

type FailingReader struct {
	err error
}

func (f FailingReader) Read(p []byte) (int, error) {
	return 0, f.err
}

var _ = Describe("TokenGenerator", func() {
	Describe("Generate()", func() {
		DescribeTable("should return exactly length base-36 characters", func(length int) {
			token, err := ofxconnect.NewTokenGenerator().Generate(length)
			Expect(err).To(BeNil())
			Expect(token).To(HaveLen(length))
			Expect(token).To(MatchRegexp(`^[0-9a-z]+$`))
		},
			Entry("1", 1),
			Entry("2", 2),
			Entry("7", 7),
			Entry("32", 32),
			Entry("4312", 4312),
		)
		It("should never repeat a 32 character token", func() {
			g := ofxconnect.NewTokenGenerator()
			seen := make(map[string]struct{}, 10000)
			for i := 0; i < 10000; i++ {
				token, err := g.Generate(32)
				Expect(err).To(BeNil())
				Expect(seen).NotTo(HaveKey(token))
				seen[token] = struct{}{}
			}
		})
		It("should reject non positive lengths", func() {
			_, err := ofxconnect.NewTokenGenerator().Generate(0)
			Expect(err).To(MatchError("error - token length must be positive"))
		})
		Context("when the random source fails", func() {
			It("should return an EntropyError", func() {
				cause := errors.New("fake entropy failure")
				g := ofxconnect.NewTokenGeneratorFromReader(FailingReader{err: cause})
				token, err := g.Generate(32)
				Expect(token).To(BeEmpty())
				var entropyErr *ofxconnect.EntropyError
				Expect(errors.As(err, &entropyErr)).To(BeTrue())
				Expect(errors.Is(err, cause)).To(BeTrue())
			})
			It("should not settle for a short read", func() {
				g := ofxconnect.NewTokenGeneratorFromReader(strings.NewReader("abc"))
				_, err := g.Generate(32)
				var entropyErr *ofxconnect.EntropyError
				Expect(errors.As(err, &entropyErr)).To(BeTrue())
				Expect(errors.Is(err, io.ErrUnexpectedEOF)).To(BeTrue())
			})
		})
	})
})
