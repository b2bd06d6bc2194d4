package portal

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/mesh-intelligence/portal/pkg/types"
)

// GetEnumerations lists the members of enumeration list listID. With
// flatten, descendants of nested lists are returned in one level. Members
// whose ID is the empty GUID are dropped.
func (c *Client) GetEnumerations(ctx context.Context, listID uuid.UUID, flatten bool) ([]types.EnumValue, error) {
	if err := c.checkSession(); err != nil {
		return nil, err
	}
	path := fmt.Sprintf("%s?Id=%s&itemFilter=&flatten=%s", PathEnumList,
		url.QueryEscape(types.FormatD(listID)), strconv.FormatBool(flatten))
	resp, err := c.send(ctx, methodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return parseEnumList(resp, flatten)
}

func parseEnumList(data []byte, flatten bool) ([]types.EnumValue, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: enumeration list is not JSON", types.ErrInvalidRecord)
	}
	res := gjson.ParseBytes(data)
	if !res.IsArray() {
		return nil, fmt.Errorf("%w: enumeration list is not an array", types.ErrInvalidRecord)
	}
	out := []types.EnumValue{}
	var parseErr error
	res.ForEach(func(_, item gjson.Result) bool {
		id, err := types.ParseGUID(item.Get("ID").String())
		if err != nil {
			parseErr = fmt.Errorf("enumeration member %q: %w", item.Get("Text").String(), err)
			return false
		}
		if id == types.EmptyGUID {
			return true
		}
		out = append(out, types.NewEnumValue(
			id,
			item.Get("Text").String(),
			item.Get("Name").String(),
			flatten,
			item.Get("HasChildren").Bool(),
			int(item.Get("Ordinal").Int()),
		))
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return out, nil
}
