package mongo

import (
	"errors"
	"testing"

	"github.com/webadmin/cms-api/internal/core/domain"
)

func TestDuplicateUserError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "email index",
			err:  errors.New(`write exception: write errors: [E11000 duplicate key error collection: cms.users index: email_1 dup key: { email: "bob@example.com" }]`),
			want: domain.ErrEmailTaken,
		},
		{
			name: "username index",
			err:  errors.New(`write exception: write errors: [E11000 duplicate key error collection: cms.users index: username_1 dup key: { username: "bob" }]`),
			want: domain.ErrUsernameTaken,
		},
		{
			name: "unrecognized index defaults to username",
			err:  errors.New("E11000 duplicate key error"),
			want: domain.ErrUsernameTaken,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := duplicateUserError(tc.err); !errors.Is(got, tc.want) {
				t.Fatalf("duplicateUserError(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}
}
