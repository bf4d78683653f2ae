package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/salesight/salesight/internal/domain"
)

// Guidance resolves the long-form guidance for one combined segment. The
// analytics engine satisfies it.
type Guidance interface {
	GuidanceFor(combined string, revenue float64) domain.SegmentGuidance
}

// SnapshotWorkbook renders the analytics snapshot as a multi-sheet workbook,
// one sheet per analysis.
func SnapshotWorkbook(snap *domain.AnalyticsSnapshot, guidance Guidance) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeSheet(f, "Обзор по месяцам",
		[]string{"Месяц", "Количество продаж", "Выручка (руб.)"},
		monthlyRows(snap.MonthlyTrend)); err != nil {
		return nil, err
	}

	if err := writeSheet(f, "ABC анализ",
		[]string{"Товар", "Выручка (руб.)", "Доля в выручке (%)", "Накопительная доля (%)", "Категория"},
		abcRows(snap.ABCAnalysis)); err != nil {
		return nil, err
	}

	if err := writeSheet(f, "XYZ анализ",
		[]string{"Товар", "Коэффициент вариации (%)", "Категория", "Стабильность спроса"},
		xyzRows(snap.XYZAnalysis)); err != nil {
		return nil, err
	}

	if err := writeSheet(f, "ABC-XYZ анализ",
		[]string{"Товар", "ABC", "XYZ", "Комбинированная категория", "Стратегия", "Приоритет", "Выручка (руб.)", "Коэффициент вариации (%)"},
		abcxyzRows(snap.ABCXYZAnalysis)); err != nil {
		return nil, err
	}

	if err := writeSheet(f, "Подробный анализ",
		[]string{"Товар", "Категория", "Приоритет", "Выручка (руб.)", "Коэффициент вариации (%)", "Основные риски", "Рекомендации"},
		detailedRows(snap.ABCXYZAnalysis, guidance)); err != nil {
		return nil, err
	}

	if err := writeSheet(f, "Факторный анализ",
		[]string{"Фактор", "Влияние (%)", "Описание", "Тренд"},
		factorRows(snap.FactorAnalysis)); err != nil {
		return nil, err
	}

	if err := writeSheet(f, "Структурный анализ",
		[]string{"Тип", "Название", "Значение (руб.)", "Доля (%)", "Изменение (%)"},
		structuralRows(snap.Structural)); err != nil {
		return nil, err
	}

	// The default sheet created by excelize stays empty otherwise.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, name string, headers []string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := setRow(f, name, 1, header); err != nil {
		return err
	}

	for i, row := range rows {
		if err := setRow(f, name, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to build cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", rowNum, sheet, err)
	}
	return nil
}

func monthlyRows(trend []domain.MonthlyPoint) [][]interface{} {
	rows := make([][]interface{}, 0, len(trend))
	for _, p := range trend {
		rows = append(rows, []interface{}{p.Month, p.Sales, p.Revenue})
	}
	return rows
}

func abcRows(items []domain.ABCItem) [][]interface{} {
	rows := make([][]interface{}, 0, len(items))
	for _, item := range items {
		rows = append(rows, []interface{}{
			item.ProductName,
			item.Revenue,
			fmt.Sprintf("%.1f", item.Percentage),
			fmt.Sprintf("%.1f", item.CumulativePercentage),
			item.Category,
		})
	}
	return rows
}

func xyzRows(items []domain.XYZItem) [][]interface{} {
	rows := make([][]interface{}, 0, len(items))
	for _, item := range items {
		rows = append(rows, []interface{}{
			item.ProductName,
			fmt.Sprintf("%.1f", item.CoefficientVariation),
			item.Category,
			item.DemandStability,
		})
	}
	return rows
}

func abcxyzRows(items []domain.ABCXYZItem) [][]interface{} {
	rows := make([][]interface{}, 0, len(items))
	for _, item := range items {
		rows = append(rows, []interface{}{
			item.ProductName,
			item.ABCCategory,
			item.XYZCategory,
			item.CombinedCategory,
			item.Strategy,
			item.Priority,
			item.Revenue,
			fmt.Sprintf("%.1f", item.CoefficientVariation),
		})
	}
	return rows
}

func detailedRows(items []domain.ABCXYZItem, guidance Guidance) [][]interface{} {
	rows := make([][]interface{}, 0, len(items))
	for _, item := range items {
		g := guidance.GuidanceFor(item.CombinedCategory, item.Revenue)
		rows = append(rows, []interface{}{
			item.ProductName,
			item.CombinedCategory,
			item.Priority,
			item.Revenue,
			fmt.Sprintf("%.1f", item.CoefficientVariation),
			strings.Join(g.Risks, "; "),
			strings.Join(g.Recommendations, "; "),
		})
	}
	return rows
}

func factorRows(factors []domain.Factor) [][]interface{} {
	rows := make([][]interface{}, 0, len(factors))
	for _, f := range factors {
		trend := "Нейтральный"
		switch f.Trend {
		case "positive":
			trend = "Положительный"
		case "negative":
			trend = "Отрицательный"
		}
		rows = append(rows, []interface{}{
			f.Factor,
			fmt.Sprintf("%.1f", f.Impact),
			f.Description,
			trend,
		})
	}
	return rows
}

func structuralRows(s domain.StructuralAnalysis) [][]interface{} {
	var rows [][]interface{}
	appendGroup := func(kind string, entries []domain.StructuralEntry) {
		for _, entry := range entries {
			change := ""
			if entry.Change != nil {
				change = fmt.Sprintf("%.1f", *entry.Change)
			}
			rows = append(rows, []interface{}{
				kind,
				entry.Name,
				entry.Value,
				fmt.Sprintf("%.1f", entry.Percentage),
				change,
			})
		}
	}
	appendGroup("Категория", s.ByCategory)
	appendGroup("Регион", s.ByRegion)
	appendGroup("Канал", s.ByChannel)
	return rows
}
