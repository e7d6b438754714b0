package job

import (
	"context"
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

// dynamodb job posting row
type ddbJobRow struct {
	ID                 string `dynamodbav:"id"`
	Title              string `dynamodbav:"title"`
	Location           string `dynamodbav:"location"`
	JobType            string `dynamodbav:"job_type,omitempty"`
	Company            string `dynamodbav:"company,omitempty"`
	Profile            string `dynamodbav:"profile,omitempty"`
	ExperienceRequired string `dynamodbav:"experience_required,omitempty"`
	CTC                string `dynamodbav:"ctc,omitempty"`
	Vacancies          int    `dynamodbav:"vacancies,omitempty"`
	Qualification      string `dynamodbav:"qualification,omitempty"`
	Description        string `dynamodbav:"description,omitempty"`
	IsActive           bool   `dynamodbav:"is_active"`
	CreatedAt          string `dynamodbav:"created_at"`
}

func ddbJobKey(id uuid.UUID) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: fmt.Sprintf("job#%s", id)},
		"sk": &types.AttributeValueMemberS{Value: "details#"},
	}
}

func newDdbJobRow(job Job) ddbJobRow {
	return ddbJobRow{
		ID:                 job.ID.String(),
		Title:              job.Title,
		Location:           job.Location,
		JobType:            job.JobType,
		Company:            job.Company,
		Profile:            job.Profile,
		ExperienceRequired: job.ExperienceRequired,
		CTC:                job.CTC,
		Vacancies:          job.Vacancies,
		Qualification:      job.Qualification,
		Description:        job.Description,
		IsActive:           job.IsActive,
		CreatedAt:          job.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (row ddbJobRow) toJob() (*Job, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse job id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, row.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return &Job{
		ID:                 id,
		Title:              row.Title,
		Location:           row.Location,
		JobType:            row.JobType,
		Company:            row.Company,
		Profile:            row.Profile,
		ExperienceRequired: row.ExperienceRequired,
		CTC:                row.CTC,
		Vacancies:          row.Vacancies,
		Qualification:      row.Qualification,
		Description:        row.Description,
		IsActive:           row.IsActive,
		CreatedAt:          createdAt,
	}, nil
}

// DdbRepo shares the submissions table, using pk "job#<uuid>" rows.
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

func (r *DdbRepo) Store(ctx context.Context, job Job) error {
	item, err := attributevalue.MarshalMap(newDdbJobRow(job))
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}
	for k, v := range ddbJobKey(job.ID) {
		item[k] = v
	}
	_, err = r.ddbClient.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put job: %w", err)
	}
	return nil
}

func (r *DdbRepo) Get(ctx context.Context, id uuid.UUID) (*Job, error) {
	out, err := r.ddbClient.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       ddbJobKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if out.Item == nil {
		return nil, ErrNotFound
	}
	row := ddbJobRow{}
	if err := attributevalue.UnmarshalMap(out.Item, &row); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job: %w", err)
	}
	return row.toJob()
}

func (r *DdbRepo) List(ctx context.Context, activeOnly bool) ([]Job, error) {
	cond := expression.Name("pk").BeginsWith("job#")
	if activeOnly {
		cond = cond.And(expression.Name("is_active").Equal(expression.Value(true)))
	}
	expr, err := expression.NewBuilder().WithFilter(cond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build filter expression: %w", err)
	}

	jobs := make([]Job, 0)
	paginator := dynamodb.NewScanPaginator(r.ddbClient, &dynamodb.ScanInput{
		TableName:                 aws.String(r.tableName),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to scan jobs: %w", err)
		}
		rows := make([]ddbJobRow, 0, len(page.Items))
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &rows); err != nil {
			return nil, fmt.Errorf("failed to unmarshal jobs: %w", err)
		}
		for _, row := range rows {
			job, err := row.toJob()
			if err != nil {
				return nil, err
			}
			jobs = append(jobs, *job)
		}
	}
	return jobs, nil
}
