package databases

import "go.mongodb.org/mongo-driver/mongo/options"

// mongoPaginate translates 1-based page numbers into the skip/limit options
// the admin complaint listing feeds to Find.
type mongoPaginate struct {
	limit int64
	page  int64
}

func newMongoPaginate(limit, page int) *mongoPaginate {
	return &mongoPaginate{
		limit: int64(limit),
		page:  int64(page),
	}
}

func (mp *mongoPaginate) getPaginatedOpts() *options.FindOptions {
	l := mp.limit
	skip := mp.page*mp.limit - mp.limit
	return &options.FindOptions{Limit: &l, Skip: &skip}
}
