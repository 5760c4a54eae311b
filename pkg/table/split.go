package table

import (
	"github.com/go-gota/gota/dataframe"
)

// Group 是按某列取值拆分出的一张子表
type Group struct {
	Value string
	Frame dataframe.DataFrame
}

// SplitByColumn 按列的每个不同取值拆分表，子表顺序为取值首次出现的顺序
// 所有子表的行合起来正好是原表的行
func SplitByColumn(df dataframe.DataFrame, column string) ([]Group, error) {
	if err := CheckChannel(df, column); err != nil {
		return nil, err
	}

	var order []string
	rows := make(map[string][]int)
	for i, v := range df.Col(column).Records() {
		if _, ok := rows[v]; !ok {
			order = append(order, v)
		}
		rows[v] = append(rows[v], i)
	}

	groups := make([]Group, 0, len(order))
	for _, v := range order {
		sub := subset(df, rows[v])
		if sub.Err != nil {
			return nil, sub.Err
		}
		groups = append(groups, Group{Value: v, Frame: sub})
	}
	return groups, nil
}
