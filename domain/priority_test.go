package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Priority
		wantErr error
	}{
		{name: "lowercase", input: "high", want: PriorityHigh},
		{name: "mixed case", input: "High", want: PriorityHigh},
		{name: "uppercase", input: "HIGH", want: PriorityHigh},
		{name: "medium", input: "medium", want: PriorityMedium},
		{name: "low with whitespace", input: "  low ", want: PriorityLow},
		{name: "unknown value", input: "urgent", wantErr: ErrInvalidPriority},
		{name: "empty string", input: "", wantErr: ErrInvalidPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriorityIsValid(t *testing.T) {
	assert.True(t, PriorityLow.IsValid())
	assert.True(t, PriorityMedium.IsValid())
	assert.True(t, PriorityHigh.IsValid())
	assert.False(t, Priority("URGENT").IsValid())
	assert.False(t, Priority("").IsValid())
}
