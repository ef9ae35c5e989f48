package employee

import "context"

type StoreAPI interface {
	Upsert(ctx context.Context, sub Submission) (Employee, error)
	Get(ctx context.Context, id int64) (Employee, error)
}
