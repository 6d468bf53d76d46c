package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/jago-app/jago-api/internal/domain"
)

// OTPRepo manages live one-time passwords. PK: email.
//
// The two operations are deliberately the only ones offered: a keyed Put is
// the atomic supersede-on-reissue, and DeleteMatching is the atomic
// compare-and-delete that gates verification. Splitting either into a
// read-then-write pair would reintroduce the races they exist to close.
type OTPRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewOTPRepo(client *dynamodb.Client, tableName string) *OTPRepo {
	return &OTPRepo{client: client, tableName: tableName}
}

// Put writes an OTP record, replacing any prior record for the same email in
// a single atomic operation.
func (r *OTPRepo) Put(ctx context.Context, rec *domain.OTPRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal otp: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// DeleteMatching deletes the record for email if and only if its code and
// purpose match, returning the deleted record. When no record matches —
// absent, wrong code, or wrong purpose — it returns domain.ErrNotFound and
// deletes nothing. At most one concurrent caller can observe a given record.
func (r *OTPRepo) DeleteMatching(ctx context.Context, email, code string, purpose domain.OTPPurpose) (*domain.OTPRecord, error) {
	out, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey(fieldEmail, email),
		ConditionExpression: aws.String("#c = :code AND #p = :purpose"),
		ExpressionAttributeNames: map[string]string{
			"#c": fieldCode,
			"#p": fieldPurpose,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":code":    &types.AttributeValueMemberS{Value: code},
			":purpose": &types.AttributeValueMemberS{Value: string(purpose)},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("no matching otp: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	var rec domain.OTPRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
