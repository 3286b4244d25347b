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

// PlanRepo provides typed DynamoDB operations for the plans table.
type PlanRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPlanRepo(client *dynamodb.Client, tableName string) *PlanRepo {
	return &PlanRepo{client: client, tableName: tableName}
}

func (r *PlanRepo) Put(ctx context.Context, p *domain.Plan) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *PlanRepo) Get(ctx context.Context, planID string) (*domain.Plan, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("plan_id", planID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("plan not found: %w", domain.ErrNotFound)
	}
	var p domain.Plan
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByGym returns all plans of one gym via the gym_id-index GSI.
func (r *PlanRepo) ListByGym(ctx context.Context, gymID string) ([]domain.Plan, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String("gym_id-index"),
		KeyConditionExpression: aws.String("gym_id = :gid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":gid": &types.AttributeValueMemberS{Value: gymID},
		},
	})
	if err != nil {
		return nil, err
	}
	var plans []domain.Plan
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *PlanRepo) Update(ctx context.Context, planID string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("plan_id", planID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

func (r *PlanRepo) SoftDelete(ctx context.Context, planID string) error {
	return r.Update(ctx, planID, map[string]interface{}{fieldEnable: false})
}
