package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, ""},
		{"config", fmt.Errorf("%w: Client_ID is required", ErrConfig), KindConfig},
		{"auth", fmt.Errorf("%w: status 401", ErrAuth), KindAuth},
		{"network wrapped twice", fmt.Errorf("tick: %w", fmt.Errorf("%w: dial tcp", ErrNetwork)), KindNetwork},
		{"not found", fmt.Errorf("%w: nobody", ErrNotFound), KindNotFound},
		{"unknown", errors.New("boom"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}
