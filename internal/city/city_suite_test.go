package city

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCity(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "City Growth Suite")
}
