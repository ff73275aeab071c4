package content

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSectionsAreUniqueAndOrdered(t *testing.T) {
	p := Default()
	require.Equal(t, []string{"home", "skills", "projects", "experience", "contact"}, p.SectionIDs())

	s, ok := p.Section(SectionProjects)
	require.True(t, ok)
	require.Equal(t, "Projects", s.Label)

	_, ok = p.Section("blog")
	require.False(t, ok)
}

func TestDefaultReturnsFreshCopies(t *testing.T) {
	a := Default()
	a.Skills[0] = "COBOL"
	require.Equal(t, "React", Default().Skills[0])
}
