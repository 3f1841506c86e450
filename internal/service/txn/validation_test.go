package txn

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
)

func validPayment() PaymentRequest {
	return PaymentRequest{
		StudentID: 7,
		TermCode:  "2025FA",
		KindCode:  domain.PaymentKindCard,
		Amount:    decimal.RequireFromString("412.50"),
	}
}

func TestValidatePaymentRequest(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *PaymentRequest)
		wantField string
		wantRule  string
	}{
		{name: "valid card payment", mutate: func(r *PaymentRequest) {}},
		{name: "valid cash payment", mutate: func(r *PaymentRequest) { r.KindCode = domain.PaymentKindCash }},
		{name: "missing student", mutate: func(r *PaymentRequest) { r.StudentID = 0 }, wantField: "student_id", wantRule: "required"},
		{name: "negative student", mutate: func(r *PaymentRequest) { r.StudentID = -3 }, wantField: "student_id", wantRule: "gt"},
		{name: "missing term", mutate: func(r *PaymentRequest) { r.TermCode = "" }, wantField: "term_code", wantRule: "required"},
		{name: "missing kind", mutate: func(r *PaymentRequest) { r.KindCode = "" }, wantField: "kind_code", wantRule: "required"},
		{name: "unknown kind", mutate: func(r *PaymentRequest) { r.KindCode = "CHEQUE" }, wantField: "kind_code", wantRule: "payment_kind"},
		{name: "zero amount", mutate: func(r *PaymentRequest) { r.Amount = decimal.Zero }, wantField: "amount", wantRule: "money"},
		{name: "negative amount", mutate: func(r *PaymentRequest) { r.Amount = decimal.NewFromInt(-5) }, wantField: "amount", wantRule: "money"},
		{name: "largest storable amount", mutate: func(r *PaymentRequest) { r.Amount = decimal.RequireFromString("9999999999.99") }},
		{name: "amount beyond storage", mutate: func(r *PaymentRequest) { r.Amount = decimal.RequireFromString("10000000000") }, wantField: "amount", wantRule: "money"},
		{name: "huge amount", mutate: func(r *PaymentRequest) { r.Amount = decimal.New(1, 15) }, wantField: "amount", wantRule: "money"},
		{name: "fractional cents", mutate: func(r *PaymentRequest) { r.Amount = decimal.RequireFromString("10.005") }, wantField: "amount", wantRule: "money"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validPayment()
			tt.mutate(&req)

			err := validateRequest(req)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, domain.ErrValidation)
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			require.Len(t, verr.Violations, 1)
			assert.Equal(t, tt.wantField, verr.Violations[0].Field)
			assert.Equal(t, tt.wantRule, verr.Violations[0].Rule)
		})
	}
}

func TestValidatePaymentRequest_ReportsEveryField(t *testing.T) {
	err := validateRequest(PaymentRequest{})

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"student_id", "term_code", "kind_code", "amount"}, fields)
}

func TestValidateGradePostRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       GradePostRequest
		wantField string
	}{
		{name: "valid", req: GradePostRequest{StudentID: 1, OfferingID: 2, TutorID: 3, Grade: "HD"}},
		{name: "missing offering", req: GradePostRequest{StudentID: 1, TutorID: 3, Grade: "HD"}, wantField: "offering_id"},
		{name: "missing tutor", req: GradePostRequest{StudentID: 1, OfferingID: 2, Grade: "HD"}, wantField: "tutor_id"},
		{name: "empty grade", req: GradePostRequest{StudentID: 1, OfferingID: 2, TutorID: 3}, wantField: "grade"},
		{name: "grade too long", req: GradePostRequest{StudentID: 1, OfferingID: 2, TutorID: 3, Grade: "PASS+"}, wantField: "grade"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.req)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}
			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantField, verr.Violations[0].Field)
		})
	}
}
