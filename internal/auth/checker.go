package auth

import "context"

var _ Checker = (*LoginChecker)(nil)

type Checker interface {
	IsLogged(ctx context.Context, token string) (bool, error)
}

var _ StudentTokenResolver = (*StudentResolver)(nil)

type StudentTokenResolver interface {
	Resolve(ctx context.Context, token string) (string, error)
}
