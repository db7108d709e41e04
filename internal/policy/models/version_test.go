package models

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type VersionSuite struct {
	suite.Suite
}

func TestVersionSuite(t *testing.T) {
	suite.Run(t, new(VersionSuite))
}

func (s *VersionSuite) TestParseVersion() {
	s.Run("strict major.minor parses", func() {
		v, ok := ParseVersion("2.7")
		s.True(ok)
		s.Equal(Version{Major: 2, Minor: 7}, v)
	})

	s.Run("rejects missing minor", func() {
		_, ok := ParseVersion("2")
		s.False(ok)
	})

	s.Run("rejects three components", func() {
		_, ok := ParseVersion("1.2.3")
		s.False(ok)
	})

	s.Run("rejects negative components", func() {
		_, ok := ParseVersion("-1.2")
		s.False(ok)
	})

	s.Run("rejects non-numeric components", func() {
		_, ok := ParseVersion("v1.2")
		s.False(ok)
	})
}

func (s *VersionSuite) TestNextVersion() {
	s.Run("increments minor", func() {
		s.Equal("1.1", NextVersion("1.0"))
	})

	s.Run("crosses the two-digit minor boundary numerically", func() {
		s.Equal("9.10", NextVersion("9.9"))
	})

	s.Run("non major.minor strings get a .1 suffix", func() {
		s.Equal("2020-rev-A.1", NextVersion("2020-rev-A"))
	})
}

func (s *VersionSuite) TestCompareVersions() {
	s.Run("orders numerically, not lexically", func() {
		// String comparison would put "9.9" after "9.10".
		s.Equal(1, CompareVersions("9.10", "9.9"))
		s.Equal(-1, CompareVersions("9.9", "9.10"))
	})

	s.Run("major dominates minor", func() {
		s.Equal(1, CompareVersions("10.0", "9.99"))
	})

	s.Run("equal versions compare zero", func() {
		s.Equal(0, CompareVersions("3.4", "3.4"))
	})

	s.Run("falls back to string comparison for unparseable input", func() {
		s.Equal(-1, CompareVersions("a", "b"))
	})
}
