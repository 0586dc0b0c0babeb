package application

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lottobot/apperrors"
)

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		want     Command
		wantErr  bool
		wantRule string
	}{
		{
			name:  "start without code",
			input: "/start",
			want:  StartCommand{},
		},
		{
			name:  "start with referral code",
			input: "/start ab12cd34",
			want:  StartCommand{ReferralCode: "ab12cd34"},
		},
		{
			name:  "balance",
			input: "/balance",
			want:  BalanceCommand{},
		},
		{
			name:  "announce",
			input: "/announce",
			want:  AnnounceCommand{},
		},
		{
			name:  "pending",
			input: "/pending",
			want:  PendingCommand{},
		},
		{
			name:  "stake text",
			input: "1,2,3,4,5:10",
			want:  StakeCommand{Text: "1,2,3,4,5:10"},
		},
		{
			name:  "malformed stake still routes to the stake parser",
			input: "1,2,3:10",
			want:  StakeCommand{Text: "1,2,3:10"},
		},
		{
			name:  "deposit claim",
			input: "0xdeadbeef usdt",
			want:  DepositClaimCommand{TxRef: "0xdeadbeef", Method: "USDT"},
		},
		{
			name:  "withdrawal request",
			input: "100 TON EQabcdef",
			want:  WithdrawRequestCommand{Amount: decimal.NewFromInt(100), Method: "TON", Address: "EQabcdef"},
		},
		{
			name:  "deposit approve",
			input: "/deposit_approve 7 50",
			want:  DepositApproveCommand{ClaimID: 7, Amount: decimal.NewFromInt(50)},
		},
		{
			name:  "deposit reject",
			input: "/deposit_reject 7",
			want:  DepositRejectCommand{ClaimID: 7},
		},
		{
			name:  "withdraw approve",
			input: "/withdraw_approve 3",
			want:  WithdrawApproveCommand{RequestID: 3},
		},
		{
			name:  "withdraw reject",
			input: "/withdraw_reject 3",
			want:  WithdrawRejectCommand{RequestID: 3},
		},
		{
			name:  "language",
			input: "/language DE",
			want:  LanguageCommand{Tag: "de"},
		},
		{
			name:    "empty input",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "unknown slash command",
			input:   "/frobnicate",
			wantErr: true,
		},
		{
			name:    "one bare word",
			input:   "hello",
			wantErr: true,
		},
		{
			name:    "three fields with non-numeric amount",
			input:   "lots TON EQabcdef",
			wantErr: true,
		},
		{
			name:     "deposit approve with bad amount",
			input:    "/deposit_approve 7 fifty",
			wantRule: apperrors.RuleDepositAmount,
		},
		{
			name:     "deposit approve with bad id",
			input:    "/deposit_approve seven 50",
			wantRule: apperrors.RuleTargetID,
		},
		{
			name:     "deposit approve with missing amount",
			input:    "/deposit_approve 7",
			wantRule: apperrors.RuleCommandUsage,
		},
		{
			name:     "withdraw approve with missing id",
			input:    "/withdraw_approve",
			wantRule: apperrors.RuleCommandUsage,
		},
		{
			name:     "withdraw reject with bad id",
			input:    "/withdraw_reject three",
			wantRule: apperrors.RuleTargetID,
		},
		{
			name:     "language with missing tag",
			input:    "/language",
			wantRule: apperrors.RuleCommandUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCommand(tt.input)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownCommand)
				return
			}
			if tt.wantRule != "" {
				var verr *apperrors.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantRule, verr.Rule)
				return
			}

			require.NoError(t, err)
			if want, ok := tt.want.(WithdrawRequestCommand); ok {
				cmd := got.(WithdrawRequestCommand)
				assert.True(t, cmd.Amount.Equal(want.Amount))
				assert.Equal(t, want.Method, cmd.Method)
				assert.Equal(t, want.Address, cmd.Address)
				return
			}
			if want, ok := tt.want.(DepositApproveCommand); ok {
				cmd := got.(DepositApproveCommand)
				assert.Equal(t, want.ClaimID, cmd.ClaimID)
				assert.True(t, cmd.Amount.Equal(want.Amount))
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
