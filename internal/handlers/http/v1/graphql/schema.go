package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/gfdmit/web-forum/post-api/internal/model"
)

func (gh *gqlHandler) initSchema() error {
	postType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Post",
			Fields: graphql.Fields{
				"id":    &graphql.Field{Type: graphql.ID},
				"title": &graphql.Field{Type: graphql.String},
				"text":  &graphql.Field{Type: graphql.String},
			},
		},
	)

	postPageType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "PostPage",
			Fields: graphql.Fields{
				"items": &graphql.Field{
					Type: graphql.NewList(postType),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(model.PostPage).Posts, nil
					},
				},
				"totalPages": &graphql.Field{
					Type: graphql.Int,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(model.PostPage).TotalPages, nil
					},
				},
				"totalCount": &graphql.Field{
					Type: graphql.Int,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(model.PostPage).TotalCount, nil
					},
				},
			},
		},
	)

	postInput := graphql.NewInputObject(
		graphql.InputObjectConfig{
			Name: "PostInput",
			Fields: graphql.InputObjectConfigFieldMap{
				"title": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
				"text":  &graphql.InputObjectFieldConfig{Type: graphql.String},
			},
		},
	)

	queryType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Query",
			Fields: graphql.Fields{
				"post":  getPostQuery(gh, postType),
				"posts": getPostsQuery(gh, postPageType),
			},
		},
	)

	mutationType := graphql.NewObject(
		graphql.ObjectConfig{
			Name: "Mutation",
			Fields: graphql.Fields{
				"createPost": createPostMutation(gh, postType, postInput),
				"updatePost": updatePostMutation(gh, postType, postInput),
				"deletePost": deletePostMutation(gh),
			},
		},
	)

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
	if err != nil {
		return err
	}
	gh.schema = schema

	return nil
}
