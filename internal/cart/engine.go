package cart

// 買い物カゴの純粋な状態遷移。
// 永続化は呼び出し側の責務（usecaseが遷移後に必ずSaveする）。

// カゴの明細。UnitPriceはセンターボ（1/100 BRL）。
type Item struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int64  `json:"quantity"`
	Image     string `json:"image,omitempty"`
}

// カゴ全体のスナップショット。
// Totalは常にΣ(UnitPrice×Quantity)。全遷移が差分更新で維持する。
type State struct {
	Items []Item `json:"items"`
	Total int64  `json:"total"`
}

// 空のカゴ
func Empty() State {
	return State{Items: []Item{}, Total: 0}
}

// Addは商品を1個追加する。同一IDは数量+1、新規は数量1で末尾に追加。
func (s State) Add(it Item) State {
	items := make([]Item, len(s.Items))
	copy(items, s.Items)

	for i := range items {
		if items[i].ID == it.ID {
			items[i].Quantity++
			return State{Items: items, Total: s.Total + it.UnitPrice}
		}
	}

	it.Quantity = 1
	return State{Items: append(items, it), Total: s.Total + it.UnitPrice}
}

// Removeは明細を丸ごと削除する。IDが無ければ何もしない。
func (s State) Remove(id string) State {
	idx := -1
	for i := range s.Items {
		if s.Items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}

	removed := s.Items[idx]
	items := make([]Item, 0, len(s.Items)-1)
	items = append(items, s.Items[:idx]...)
	items = append(items, s.Items[idx+1:]...)

	return State{Items: items, Total: s.Total - removed.UnitPrice*removed.Quantity}
}

// UpdateQuantityは数量を置き換える。IDが無ければ何もしない。
// qty>=1の強制は境界（handler/usecase）側で行う。
func (s State) UpdateQuantity(id string, qty int64) State {
	idx := -1
	for i := range s.Items {
		if s.Items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s
	}

	items := make([]Item, len(s.Items))
	copy(items, s.Items)

	diff := qty - items[idx].Quantity
	items[idx].Quantity = qty

	return State{Items: items, Total: s.Total + items[idx].UnitPrice*diff}
}

// Clearは初期状態へ戻す。
func (s State) Clear() State {
	return Empty()
}
