package command

import "github.com/shadergraph/core/graph/paramtext"

func paramGet(params map[string]interface{}, path string) (interface{}, bool) {
	return paramtext.Get(params, path)
}
