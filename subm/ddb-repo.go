package subm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// dynamodb submission row
type ddbSubmRow struct {
	ID               string     `dynamodbav:"id"`
	Kind             string     `dynamodbav:"kind"`
	Payload          []ddbField `dynamodbav:"payload"`
	AttachmentRef    string     `dynamodbav:"attachment_ref,omitempty"`
	ReviewStatus     string     `dynamodbav:"review_status"`
	ProcessingStatus string     `dynamodbav:"processing_status"`
	ProcessingError  string     `dynamodbav:"processing_error,omitempty"`
	CreatedAt        string     `dynamodbav:"created_at"`
	UpdatedAt        string     `dynamodbav:"updated_at"`
}

type ddbField struct {
	Key   string `dynamodbav:"key"`
	Value string `dynamodbav:"value"`
}

func ddbSubmKey(id uuid.UUID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("subm#%s", id)},
		"sk": &types.AttributeValueMemberS{Value: "details#"},
	}
}

func newDdbSubmRow(subm Submission) ddbSubmRow {
	payload := make([]ddbField, len(subm.Payload))
	for i, f := range subm.Payload {
		payload[i] = ddbField{Key: f.Key, Value: f.Value}
	}
	return ddbSubmRow{
		ID:               subm.ID.String(),
		Kind:             string(subm.Kind),
		Payload:          payload,
		AttachmentRef:    subm.AttachmentRef,
		ReviewStatus:     subm.ReviewStatus,
		ProcessingStatus: string(subm.ProcessingStatus),
		ProcessingError:  subm.ProcessingError,
		CreatedAt:        subm.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:        subm.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (row ddbSubmRow) toSubmission() (*Submission, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse submission id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, row.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}
	payload := make(Payload, len(row.Payload))
	for i, f := range row.Payload {
		payload[i] = Field{Key: f.Key, Value: f.Value}
	}
	return &Submission{
		ID:               id,
		Kind:             Kind(row.Kind),
		Payload:          payload,
		AttachmentRef:    row.AttachmentRef,
		ReviewStatus:     row.ReviewStatus,
		ProcessingStatus: Status(row.ProcessingStatus),
		ProcessingError:  row.ProcessingError,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}, nil
}

// DdbRepo persists submissions in a single DynamoDB table with
// pk "subm#<uuid>" and sk "details#" rows.
type DdbRepo struct {
	ddbClient *dynamodb.Client
	tableName string
}

func NewDdbRepo(ctx context.Context, region string, tableName string) (*DdbRepo, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &DdbRepo{
		ddbClient: dynamodb.NewFromConfig(cfg),
		tableName: tableName,
	}, nil
}

func (r *DdbRepo) Store(ctx context.Context, subm Submission) error {
	item, err := attributevalue.MarshalMap(newDdbSubmRow(subm))
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}
	for k, v := range ddbSubmKey(subm.ID) {
		item[k] = v
	}
	_, err = r.ddbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put submission: %w", err)
	}
	return nil
}

func (r *DdbRepo) Get(ctx context.Context, id uuid.UUID) (*Submission, error) {
	out, err := r.ddbClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       ddbSubmKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}
	row := ddbSubmRow{}
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal submission: %w", err)
	}
	return row.toSubmission()
}

func (r *DdbRepo) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	cond := expression.Name("kind").Equal(expression.Value(string(filter.Kind)))
	expr, err := expression.NewBuilder().WithFilter(cond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter expression: %w", err)
	}

	rows := make([]ddbSubmRow, 0)
	paginator := dynamodb.NewScanPaginator(r.ddbClient, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submissions: %w", err)
		}
		pageRows := make([]ddbSubmRow, 0, len(page.Items))
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &pageRows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal submissions: %w", err)
		}
		rows = append(rows, pageRows...)
	}

	res := &ListResult{}
	matched := make([]Submission, 0, len(rows))
	for _, row := range rows {
		subm, err := row.toSubmission()
		if err != nil {
			return nil, err
		}
		switch subm.ProcessingStatus {
		case StatusCompleted:
			res.TotalCompleted++
		case StatusFailed:
			res.TotalFailed++
		}
		if filter.ReviewStatus != "" && subm.ReviewStatus != filter.ReviewStatus {
			continue
		}
		matched = append(matched, *subm)
	}
	sortSubmsByCreatedDesc(matched)

	res.Total = len(matched)
	res.Subms = paginate(matched, filter.Page, filter.Limit)
	return res, nil
}

func (r *DdbRepo) Patch(ctx context.Context, id uuid.UUID, patch Patch) error {
	upd := expression.Set(
		expression.Name("updated_at"),
		expression.Value(time.Now().UTC().Format(time.RFC3339Nano)))
	if patch.ProcessingStatus != nil {
		upd = upd.Set(expression.Name("processing_status"), expression.Value(string(*patch.ProcessingStatus)))
	}
	if patch.ProcessingError != nil {
		upd = upd.Set(expression.Name("processing_error"), expression.Value(*patch.ProcessingError))
	}
	if patch.AttachmentRef != nil {
		upd = upd.Set(expression.Name("attachment_ref"), expression.Value(*patch.AttachmentRef))
	}
	if patch.ReviewStatus != nil {
		upd = upd.Set(expression.Name("review_status"), expression.Value(*patch.ReviewStatus))
	}

	cond := expression.AttributeExists(expression.Name("pk"))
	expr, err := expression.NewBuilder().WithUpdate(upd).WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("failed to build update expression: %w", err)
	}

	_, err = r.ddbClient.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       ddbSubmKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to update submission: %w", err)
	}
	return nil
}

func (r *DdbRepo) MarkStuckIfPending(ctx context.Context, id uuid.UUID, errMsg string) (bool, error) {
	upd := expression.
		Set(expression.Name("processing_status"), expression.Value(string(StatusStuck))).
		Set(expression.Name("processing_error"), expression.Value(errMsg)).
		Set(expression.Name("updated_at"), expression.Value(time.Now().UTC().Format(time.RFC3339Nano)))
	cond := expression.Name("processing_status").Equal(expression.Value(string(StatusPending)))
	expr, err := expression.NewBuilder().WithUpdate(upd).WithCondition(cond).Build()
	if err != nil {
		return false, fmt.Errorf("failed to build stuck expression: %w", err)
	}

	_, err = r.ddbClient.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       ddbSubmKey(id),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			// already terminal (or gone); the stuck write is suppressed
			return false, nil
		}
		return false, fmt.Errorf("failed to mark submission stuck: %w", err)
	}
	return true, nil
}

func (r *DdbRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.ddbClient.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       ddbSubmKey(id),
	})
	if err != nil {
		return fmt.Errorf("failed to delete submission: %w", err)
	}
	return nil
}
