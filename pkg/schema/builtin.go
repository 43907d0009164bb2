package schema

// Builtin returns the schema set of the gateway API.
//
// Every operation answers with a success document carrying a hash over its other fields
// and a result code. Any failure is reported with the shared error document.
func Builtin() *Set {
	set := must(NewSet(must(NewError("error",
		[]Field{FieldResult, FieldErrorMessage},
		WithDefault(FieldResult, "0"),
	))))

	create := must(NewSuccess(string(OperationCreate),
		[]Field{
			FieldTransactionID, FieldPaymentSlipLink, FieldExpirationNotice,
			FieldInfotext1, FieldInfotext2, FieldResult, FieldHash,
		},
		FieldHash,
		[]Field{
			FieldTransactionID, FieldPaymentSlipLink, FieldExpirationNotice,
			FieldInfotext1, FieldInfotext2, FieldResult,
		},
		WithDefault(FieldResult, "0"),
	))

	refund := must(NewSuccess(string(OperationRefund),
		[]Field{FieldOriginTransactionID, FieldRefundTransactionID, FieldResult, FieldHash},
		FieldHash,
		[]Field{FieldOriginTransactionID, FieldRefundTransactionID, FieldResult},
		WithDefault(FieldResult, "0"),
	))

	set = must(set.With(OperationCreate, create))
	set = must(set.With(OperationRefund, refund))
	for _, op := range []Operation{OperationUpdate, OperationResendEmail, OperationCancel} {
		set = must(set.With(op, transactionResult(op)))
	}
	return set
}

// transactionResult is the shape shared by calls that only acknowledge a transaction.
func transactionResult(op Operation) *Schema {
	return must(NewSuccess(string(op),
		[]Field{FieldTransactionID, FieldResult, FieldHash},
		FieldHash,
		[]Field{FieldTransactionID, FieldResult},
		WithDefault(FieldResult, "0"),
	))
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
