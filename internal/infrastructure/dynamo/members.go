package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/gymkit/gym-api/internal/domain"
)

// MemberRepo provides typed DynamoDB operations for the members table.
type MemberRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewMemberRepo(client *dynamodb.Client, tableName string) *MemberRepo {
	return &MemberRepo{client: client, tableName: tableName}
}

func (r *MemberRepo) Put(ctx context.Context, m *domain.Member) error {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return fmt.Errorf("marshal member: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *MemberRepo) Get(ctx context.Context, memberID string) (*domain.Member, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("member_id", memberID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("member not found: %w", domain.ErrNotFound)
	}
	var m domain.Member
	if err := attributevalue.UnmarshalMap(out.Item, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// QueryPage returns one page of a gym's members, newest first, via the
// gym_id-created_at-index GSI. cursor is a base64-encoded member_id.
func (r *MemberRepo) QueryPage(ctx context.Context, gymID string, limit int32, cursor string) ([]domain.Member, string, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("gym_id-created_at-index"),
		KeyConditionExpression: aws.String("gym_id = :gid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":gid": &types.AttributeValueMemberS{Value: gymID},
		},
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(limit),
	}
	if cursor != "" {
		memberID, err := decodeCursor(cursor)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", domain.ErrBadRequest)
		}
		m, err := r.Get(ctx, memberID)
		if err != nil {
			return nil, "", fmt.Errorf("invalid cursor: %w", domain.ErrBadRequest)
		}
		input.ExclusiveStartKey = map[string]types.AttributeValue{
			"member_id":  &types.AttributeValueMemberS{Value: m.MemberID},
			"gym_id":     &types.AttributeValueMemberS{Value: m.GymID},
			"created_at": &types.AttributeValueMemberS{Value: m.CreatedAt.UTC().Format(time.RFC3339Nano)},
		}
	}
	out, err := r.client.Query(ctx, input)
	if err != nil {
		return nil, "", err
	}
	var members []domain.Member
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &members); err != nil {
		return nil, "", err
	}
	nextCursor := ""
	if v, ok := out.LastEvaluatedKey["member_id"].(*types.AttributeValueMemberS); ok {
		nextCursor = encodeCursor(v.Value)
	}
	return members, nextCursor, nil
}

// ListByGym returns every member of a gym, following query pagination.
// Used by the dashboard aggregation and expiry reminders.
func (r *MemberRepo) ListByGym(ctx context.Context, gymID string) ([]domain.Member, error) {
	var members []domain.Member
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String("gym_id-created_at-index"),
			KeyConditionExpression: aws.String("gym_id = :gid"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":gid": &types.AttributeValueMemberS{Value: gymID},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		var page []domain.Member
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		members = append(members, page...)
		if out.LastEvaluatedKey == nil {
			return members, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *MemberRepo) Update(ctx context.Context, memberID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("member_id", memberID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *MemberRepo) SoftDelete(ctx context.Context, memberID string) error {
	return r.Update(ctx, memberID, map[string]interface{}{
		fieldEnable: false,
		"deleted_at": time.Now().UTC().Format(time.RFC3339),
	})
}
