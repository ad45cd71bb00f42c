package shell

import (
	"testing"

	"github.com/matryer/is"
)

func TestParseLine(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line    string
		expCmd  string
		expArgs []string
		expErr  error
	}
	cases := []testdata{
		{"", "", nil, errNoData},
		{"   ", "", nil, errNoData},
		{"play 32-28", "play", []string{"32-28"}, nil},
		{"import .b.w W 12", "import", []string{".b.w", "W", "12"}, nil},
		{"  show  ", "show", []string{}, nil},
		{"selfplay beginner expert", "selfplay", []string{"beginner", "expert"}, nil},
	}
	for _, tc := range cases {
		cmd, args, err := parseLine(tc.line)
		is.Equal(cmd, tc.expCmd)
		is.Equal(err, tc.expErr)
		is.Equal(len(args), len(tc.expArgs))
		for i := range args {
			is.Equal(args[i], tc.expArgs[i])
		}
	}
}

func TestLevelList(t *testing.T) {
	is := is.New(t)
	is.Equal(levelList(), "beginner|easy|medium|hard|expert")
}
