package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/jago-app/jago-api/internal/domain"
)

// AttendanceRepo provides typed DynamoDB operations for the attendance table.
// PK: attendance_id. GSI user_id-index: (user_id HASH, clock_in RANGE).
type AttendanceRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAttendanceRepo(client *dynamodb.Client, tableName string) *AttendanceRepo {
	return &AttendanceRepo{client: client, tableName: tableName}
}

func (r *AttendanceRepo) Put(ctx context.Context, rec *domain.AttendanceRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal attendance: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

// LatestOpen returns the user's most recent record with no clock_out, or
// domain.ErrNotFound when every record is closed.
func (r *AttendanceRepo) LatestOpen(ctx context.Context, userID string) (*domain.AttendanceRecord, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid"),
		FilterExpression:       aws.String("attribute_not_exists(clock_out)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		ScanIndexForward: aws.Bool(false), // newest first
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("no open attendance record: %w", domain.ErrNotFound)
	}
	var rec domain.AttendanceRecord
	if err := attributevalue.UnmarshalMap(out.Items[0], &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Close sets clock_out on the record, conditioned on it not being set yet.
// Of two concurrent closers exactly one succeeds; the loser gets
// domain.ErrNotFound. Returns the updated record.
func (r *AttendanceRepo) Close(ctx context.Context, attendanceID string, clockOut time.Time) (*domain.AttendanceRecord, error) {
	av, err := attributevalue.Marshal(clockOut)
	if err != nil {
		return nil, fmt.Errorf("marshal clock_out: %w", err)
	}
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("attendance_id", attendanceID),
		UpdateExpression:    aws.String("SET clock_out = :out"),
		ConditionExpression: aws.String("attribute_exists(attendance_id) AND attribute_not_exists(clock_out)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":out": av,
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return nil, fmt.Errorf("record already closed: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	var rec domain.AttendanceRecord
	if err := attributevalue.UnmarshalMap(out.Attributes, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListSince returns the user's records with clock_in at or after since,
// newest first.
func (r *AttendanceRepo) ListSince(ctx context.Context, userID string, since time.Time) ([]domain.AttendanceRecord, error) {
	sinceAV, err := attributevalue.Marshal(since)
	if err != nil {
		return nil, fmt.Errorf("marshal since: %w", err)
	}
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("user_id-index"),
		KeyConditionExpression: aws.String("user_id = :uid AND clock_in >= :since"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid":   &types.AttributeValueMemberS{Value: userID},
			":since": sinceAV,
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	var recs []domain.AttendanceRecord
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &recs); err != nil {
		return nil, err
	}
	return recs, nil
}
