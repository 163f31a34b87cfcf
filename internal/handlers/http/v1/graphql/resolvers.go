package graphql

import (
	"fmt"
	"strconv"

	"github.com/graphql-go/graphql"

	"github.com/gfdmit/web-forum/post-api/internal/model"
	"github.com/gfdmit/web-forum/post-api/internal/service"
)

func getPostQuery(gh *gqlHandler, postType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: postType,
		Args: graphql.FieldConfigArgument{
			"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := argID(p)
			if err != nil {
				return nil, err
			}
			return resolved(gh.svc.GetPost(p.Context, id))
		},
	}
}

func getPostsQuery(gh *gqlHandler, postPageType *graphql.Object) *graphql.Field {
	return &graphql.Field{
		Type: postPageType,
		Args: graphql.FieldConfigArgument{
			"page":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: service.DefaultPage},
			"pageSize": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: service.DefaultPageSize},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return resolved(gh.svc.ListPosts(p.Context, p.Args["page"].(int), p.Args["pageSize"].(int)))
		},
	}
}

func createPostMutation(gh *gqlHandler, postType *graphql.Object, postInput *graphql.InputObject) *graphql.Field {
	return &graphql.Field{
		Type: postType,
		Args: graphql.FieldConfigArgument{
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInput)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return resolved(gh.svc.CreatePost(p.Context, argPost(p)))
		},
	}
}

func updatePostMutation(gh *gqlHandler, postType *graphql.Object, postInput *graphql.InputObject) *graphql.Field {
	return &graphql.Field{
		Type: postType,
		Args: graphql.FieldConfigArgument{
			"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(postInput)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := argID(p)
			if err != nil {
				return nil, err
			}
			return resolved(gh.svc.UpdatePost(p.Context, id, argPost(p)))
		},
	}
}

func deletePostMutation(gh *gqlHandler) *graphql.Field {
	return &graphql.Field{
		Type: graphql.Int,
		Args: graphql.FieldConfigArgument{
			"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
		},
		Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			id, err := argID(p)
			if err != nil {
				return nil, err
			}
			return resolved(gh.svc.DeletePost(p.Context, id))
		},
	}
}

func argID(p graphql.ResolveParams) (int, error) {
	raw, _ := p.Args["id"].(string)
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid post id %q", raw)
	}
	return int(id), nil
}

// resolved drops the zero value that accompanies a failed call so the field
// resolves to null.
func resolved[T any](v T, err error) (interface{}, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func argPost(p graphql.ResolveParams) model.Post {
	input, _ := p.Args["input"].(map[string]interface{})
	post := model.Post{}
	post.Title, _ = input["title"].(string)
	if text, ok := input["text"].(string); ok {
		post.Text = &text
	}
	return post
}
