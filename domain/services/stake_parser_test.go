package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lottobot/apperrors"
)

func TestParseStake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		wantNumbers []int64
		wantAmount  string
		wantRule    string
	}{
		{
			name:        "valid stake",
			input:       "1,2,3,4,5:10",
			wantNumbers: []int64{1, 2, 3, 4, 5},
			wantAmount:  "10",
		},
		{
			name:        "valid stake with spaces",
			input:       " 7, 14, 21, 28, 35 : 42.5 ",
			wantNumbers: []int64{7, 14, 21, 28, 35},
			wantAmount:  "42.5",
		},
		{
			name:        "boundary numbers and amounts",
			input:       "1,13,25,37,50:200",
			wantNumbers: []int64{1, 13, 25, 37, 50},
			wantAmount:  "200",
		},
		{
			name:     "missing colon",
			input:    "1,2,3,4,5",
			wantRule: apperrors.RuleStakeFormat,
		},
		{
			name:     "too few numbers",
			input:    "1,2,3,4:10",
			wantRule: apperrors.RuleStakeFormat,
		},
		{
			name:     "too many numbers",
			input:    "1,2,3,4,5,6:10",
			wantRule: apperrors.RuleStakeFormat,
		},
		{
			name:     "non-integer token",
			input:    "1,2,x,4,5:10",
			wantRule: apperrors.RuleNumbersParse,
		},
		{
			name:     "duplicate number",
			input:    "1,2,3,3,5:10",
			wantRule: apperrors.RuleNumbersDistinct,
		},
		{
			name:     "number below range",
			input:    "0,2,3,4,5:10",
			wantRule: apperrors.RuleNumbersRange,
		},
		{
			name:     "number above range",
			input:    "1,2,3,4,51:10",
			wantRule: apperrors.RuleNumbersRange,
		},
		{
			name:     "amount not a number",
			input:    "1,2,3,4,5:ten",
			wantRule: apperrors.RuleStakeAmount,
		},
		{
			name:     "amount below minimum",
			input:    "1,2,3,4,5:0.5",
			wantRule: apperrors.RuleStakeAmount,
		},
		{
			name:     "amount above maximum",
			input:    "1,2,3,4,5:201",
			wantRule: apperrors.RuleStakeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			numbers, amount, err := ParseStake(tt.input)

			if tt.wantRule != "" {
				require.Error(t, err)
				var verr *apperrors.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantRule, verr.Rule)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantNumbers, numbers)
			assert.Equal(t, tt.wantAmount, amount.String())
		})
	}
}
