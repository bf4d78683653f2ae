package normalize

import "strings"

// RawRow is one parsed input row: arbitrary source column name to untyped
// cell value (string or number). It exists only during ingestion.
type RawRow map[string]interface{}

// AliasTable maps a canonical field name to the ordered list of source
// column headers accepted for it. The table is data rather than code so new
// locales and header spellings are additive.
type AliasTable map[string][]string

// DefaultAliases returns the alias table covering the header variants seen
// in uploaded sales files (Russian and English, multiple casings).
func DefaultAliases() AliasTable {
	return AliasTable{
		"id": {
			"id", "ID", "Id", "номер", "number", "Номер", "Number", "№", "Код записи",
		},
		"date": {
			"date", "Date", "дата", "Дата", "DATE", "Date_Time", "datetime",
			"Дата продажи", "Дата операции",
		},
		"product_name": {
			"product_name", "Product_Name", "товар", "Товар", "название", "Название",
			"product", "Product", "name", "Name", "наименование", "Наименование",
			"Product Name", "Товар/услуга", "Наименование товара", "Продукт",
		},
		"product_id": {
			"product_id", "Product_ID", "артикул", "Артикул", "sku", "SKU",
			"код", "Код", "article", "Article", "Product ID", "Код товара", "Арт.",
		},
		"category": {
			"category", "Category", "категория", "Категория", "группа", "Группа",
			"тип", "Тип", "class", "Class", "Группа товаров", "Категория товара",
		},
		"quantity": {
			"quantity", "Quantity", "количество", "Количество", "qty", "Qty",
			"кол_во", "кол-во", "amount", "Amount", "Кол-во", "Объем", "Штук",
		},
		"unit_price": {
			"unit_price", "Unit_Price", "цена", "Цена", "price", "Price",
			"цена_за_единицу", "цена за ед", "стоимость", "Стоимость",
			"Unit Price", "Цена за единицу", "Стоимость единицы", "Цена за шт",
		},
		"revenue": {
			"revenue", "Revenue", "выручка", "Выручка", "сумма", "Сумма",
			"total", "Total", "итого", "Итого", "sum", "Sum",
			"Общая сумма", "Итоговая сумма", "Стоимость", "Оборот",
		},
		"cost_price": {
			"cost_price", "Cost_Price", "себестоимость", "Себестоимость",
			"cost", "Cost", "затраты", "Затраты", "Cost Price", "Закупочная цена",
		},
		"discount": {
			"discount", "Discount", "скидка", "Скидка", "disc", "Disc",
			"Размер скидки", "Скидка %", "Скидка в %",
		},
		"vat": {
			"vat", "VAT", "ндс", "НДС",
		},
		"customer_type": {
			"customer_type", "Customer_Type", "тип_клиента", "тип клиента",
			"клиент", "Клиент", "customer", "Customer", "Тип клиента", "Покупатель",
		},
		"region": {
			"region", "Region", "регион", "Регион", "область", "Область",
			"город", "Город", "location", "Location", "Регион продаж", "Местоположение",
		},
		"sales_channel": {
			"sales_channel", "Sales_Channel", "канал", "Канал", "channel", "Channel",
			"источник", "Источник", "Канал продаж", "Способ продажи", "Канал сбыта",
		},
	}
}

// Resolver finds raw cell values for canonical fields across the alias
// table. Lookup runs two full passes: every alias by exact key first, then
// every alias case-insensitively.
type Resolver struct {
	aliases AliasTable
}

func NewResolver(aliases AliasTable) *Resolver {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	return &Resolver{aliases: aliases}
}

// Resolve returns the first present, usable value for the canonical field,
// or (nil, false) when no alias matches.
func (r *Resolver) Resolve(row RawRow, field string) (interface{}, bool) {
	variants := r.aliases[field]

	for _, variant := range variants {
		if v, ok := row[variant]; ok && usable(v) {
			return v, true
		}
	}

	for _, variant := range variants {
		want := strings.ToLower(strings.TrimSpace(variant))
		for key, v := range row {
			if strings.ToLower(strings.TrimSpace(key)) == want && usable(v) {
				return v, true
			}
		}
	}

	return nil, false
}

// usable rejects empty cells and the literal null/undefined strings that
// spreadsheet exports leave behind.
func usable(v interface{}) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		t := strings.TrimSpace(s)
		return t != "" && t != "null" && t != "undefined"
	}
	return true
}
