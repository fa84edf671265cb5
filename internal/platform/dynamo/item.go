package dynamo

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Item is a single DynamoDB item.
type Item = map[string]types.AttributeValue

// S builds a string attribute.
func S(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

// L builds an ordered list of string attributes. String sets are not used
// because they lose ordering and reject duplicates.
func L(vs []string) types.AttributeValue {
	l := make([]types.AttributeValue, len(vs))
	for i, v := range vs {
		l[i] = S(v)
	}
	return &types.AttributeValueMemberL{Value: l}
}

// Key builds the key of a table with a single string partition key.
func Key(name, value string) Item {
	return Item{name: S(value)}
}

// String reads a string attribute. ok is false when the attribute is absent.
func String(item Item, name string) (s string, ok bool, err error) {
	av, found := item[name]
	if !found {
		return "", false, nil
	}
	v, isS := av.(*types.AttributeValueMemberS)
	if !isS {
		return "", false, fmt.Errorf("attribute %s: got %T, want S", name, av)
	}
	return v.Value, true, nil
}

// StringList reads a list of string attributes. A missing attribute yields a
// nil slice.
func StringList(item Item, name string) ([]string, error) {
	av, found := item[name]
	if !found {
		return nil, nil
	}
	l, isL := av.(*types.AttributeValueMemberL)
	if !isL {
		return nil, fmt.Errorf("attribute %s: got %T, want L", name, av)
	}
	out := make([]string, len(l.Value))
	for i, e := range l.Value {
		s, isS := e.(*types.AttributeValueMemberS)
		if !isS {
			return nil, fmt.Errorf("attribute %s[%d]: got %T, want S", name, i, e)
		}
		out[i] = s.Value
	}
	return out, nil
}
