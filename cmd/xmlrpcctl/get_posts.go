package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kolo/xmlrpc"
	"github.com/spf13/cobra"
)

type getPostsOptions struct {
	url       string
	method    string
	username  string
	password  string
	postTypes []string
	category  string
	count     int
	filters   []string
}

func newGetPostsCmd() *cobra.Command {
	opts := &getPostsOptions{}
	cmd := &cobra.Command{
		Use:   "get-posts",
		Short: "Call a getPosts method and print the posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.username == "" {
				opts.username = os.Getenv("WP_USERNAME")
			}
			if opts.password == "" {
				opts.password = os.Getenv("WP_PASSWORD")
			}
			params, err := opts.params()
			if err != nil {
				return err
			}

			client, err := xmlrpc.NewClient(opts.url, nil)
			if err != nil {
				return fmt.Errorf("create xmlrpc client: %w", err)
			}
			defer client.Close()

			var reply []interface{}
			if err := client.Call(opts.method, params, &reply); err != nil {
				return fmt.Errorf("%s: %w", opts.method, err)
			}
			return writeOutput(cmd.OutOrStdout(), format, reply)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.url, "url", "http://localhost:8080/xmlrpc.php", "XML-RPC endpoint")
	f.StringVarP(&opts.method, "method", "m", "bdn.getPosts", "Method name")
	f.StringVarP(&opts.username, "username", "u", "", "Login (default $WP_USERNAME)")
	f.StringVarP(&opts.password, "password", "p", "", "Password (default $WP_PASSWORD)")
	f.StringArrayVar(&opts.postTypes, "post-type", []string{"post"}, "Post type, repeatable")
	f.StringVar(&opts.category, "category", "", "Category id or slug")
	f.IntVarP(&opts.count, "count", "n", 10, "Number of posts (-1 for all)")
	f.StringArrayVar(&opts.filters, "filter", nil, "Extra query filter key=value, repeatable")
	return cmd
}

// params builds [siteId, username, password, postType(s), category, count, extra].
func (o *getPostsOptions) params() ([]interface{}, error) {
	var postType interface{} = "post"
	switch len(o.postTypes) {
	case 0:
	case 1:
		postType = o.postTypes[0]
	default:
		types := make([]interface{}, 0, len(o.postTypes))
		for _, t := range o.postTypes {
			types = append(types, t)
		}
		postType = types
	}

	var category interface{} = false
	if o.category != "" {
		category = o.category
	}

	var extra interface{} = false
	if len(o.filters) > 0 {
		m, err := parseFilters(o.filters)
		if err != nil {
			return nil, err
		}
		extra = m
	}

	return []interface{}{1, o.username, o.password, postType, category, o.count, extra}, nil
}

// parseFilters turns ["orderby=modified", "paged=2"] into a struct value.
// Integer values are sent as <int>, everything else as <string>.
func parseFilters(pairs []string) (map[string]interface{}, error) {
	m := make(map[string]interface{}, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid filter %q, want key=value", pair)
		}
		if n, err := strconv.Atoi(value); err == nil {
			m[key] = n
		} else {
			m[key] = value
		}
	}
	return m, nil
}
