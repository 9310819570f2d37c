package elasticity_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestElasticity(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Elasticity Suite")
}
