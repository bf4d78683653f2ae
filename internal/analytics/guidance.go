package analytics

import "github.com/salesight/salesight/internal/domain"

// GuidanceFor returns the long-form merchandising guidance for a combined
// segment. The AZ segment varies with revenue because its handling depends on
// how much of the business the unstable product carries.
func (e *Engine) GuidanceFor(combined string, revenue float64) domain.SegmentGuidance {
	switch combined {
	case "AX":
		return domain.SegmentGuidance{
			Title: "Ключевые товары - постоянный контроль",
			Reasons: []string{
				"Высокая доля в выручке (группа A) - приносит основную прибыль",
				"Стабильный спрос (группа X) - предсказуемые продажи",
				"Низкий коэффициент вариации - минимальные риски",
			},
			Recommendations: []string{
				"Обеспечить постоянное наличие на складе",
				"Мониторить конкурентов и рыночные цены",
				"Инвестировать в качество и улучшение продукта",
				"Развивать долгосрочные отношения с поставщиками",
			},
			Risks: []string{
				"Потеря поставщика критически скажется на бизнесе",
				"Изменение потребительских предпочтений",
				"Появление конкурентов с лучшим предложением",
			},
		}
	case "AY":
		return domain.SegmentGuidance{
			Title: "Важные товары - сезонное планирование",
			Reasons: []string{
				"Высокая доля в выручке, но сезонный характер спроса",
				"Коэффициент вариации указывает на периодичность",
				"Требует точного прогнозирования и планирования",
			},
			Recommendations: []string{
				"Создать детальный план сезонных закупок",
				"Анализировать исторические данные для прогнозов",
				"Разработать маркетинговые кампании под сезоны",
				"Подготовить альтернативные каналы сбыта",
			},
			Risks: []string{
				"Избыточные запасы в межсезонье",
				"Недостаток товара в пиковый период",
				"Изменение сезонных трендов",
			},
		}
	case "AZ":
		return e.azGuidance(revenue)
	case "BX":
		return domain.SegmentGuidance{
			Title: "Стабильные товары - регулярный контроль",
			Reasons: []string{
				"Средняя доля в выручке со стабильным спросом",
				"Предсказуемые продажи облегчают планирование",
				"Хороший баланс между прибыльностью и стабильностью",
			},
			Recommendations: []string{
				"Оптимизировать уровни запасов",
				"Автоматизировать процессы заказа",
				"Искать возможности для увеличения маржи",
				"Рассмотреть возможности роста продаж",
			},
			Risks: []string{
				"Постепенное снижение доли рынка",
				"Появление более эффективных аналогов",
				"Изменение потребительских предпочтений",
			},
		}
	case "BY":
		return domain.SegmentGuidance{
			Title: "Сезонные товары - планирование запасов",
			Reasons: []string{
				"Средняя прибыльность с сезонными колебаниями",
				"Требует планирования под сезонные пики",
				"Возможности для оптимизации затрат",
			},
			Recommendations: []string{
				"Создать сезонные модели планирования",
				"Оптимизировать складские площади",
				"Развивать межсезонные продажи",
				"Искать новые рынки сбыта",
			},
			Risks: []string{
				"Затоваривание в межсезонье",
				"Упущенные продажи в пиковый период",
				"Высокие затраты на хранение",
			},
		}
	case "BZ":
		return domain.SegmentGuidance{
			Title: "Нестабильные товары - минимальные запасы",
			Reasons: []string{
				"Средняя прибыльность с высокой нестабильностью",
				"Сложность прогнозирования увеличивает риски",
				"Требует особого подхода к управлению",
			},
			Recommendations: []string{
				"Минимизировать уровни запасов",
				"Использовать систему \"точно в срок\"",
				"Развивать быстрые каналы поставок",
				"Рассмотреть возможность отказа от товара",
			},
			Risks: []string{
				"Высокие затраты на управление",
				"Потери от неликвидности",
				"Сложность в обслуживании клиентов",
			},
		}
	case "CX":
		return domain.SegmentGuidance{
			Title: "Стабильные товары - автоматизация",
			Reasons: []string{
				"Низкая доля в выручке, но стабильный спрос",
				"Предсказуемость позволяет автоматизировать процессы",
				"Минимальные требования к управлению",
			},
			Recommendations: []string{
				"Полная автоматизация заказов",
				"Оптимизация затрат на обслуживание",
				"Рассмотреть аутсорсинг",
				"Минимизировать административные расходы",
			},
			Risks: []string{
				"Потеря контроля над процессом",
				"Возможные сбои в автоматизации",
				"Снижение качества обслуживания",
			},
		}
	case "CY":
		return domain.SegmentGuidance{
			Title: "Сезонные товары - точечные закупки",
			Reasons: []string{
				"Низкая прибыльность с сезонными колебаниями",
				"Ограниченный потенциал роста",
				"Требует минимальных инвестиций",
			},
			Recommendations: []string{
				"Закупки только под конкретные заказы",
				"Минимизировать складские запасы",
				"Рассмотреть работу с дропшиппингом",
				"Оценить целесообразность продолжения продаж",
			},
			Risks: []string{
				"Потеря клиентов из-за отсутствия товара",
				"Упущенные возможности в пиковые периоды",
				"Высокие относительные затраты",
			},
		}
	case "CZ":
		return domain.SegmentGuidance{
			Title: "Товары на выбытие - минимизация",
			Reasons: []string{
				"Низкая прибыльность и нестабильный спрос",
				"Высокие риски и затраты на управление",
				"Отвлекает ресурсы от более важных товаров",
			},
			Recommendations: []string{
				"Прекратить активные продажи",
				"Распродать остатки со скидкой",
				"Не возобновлять закупки",
				"Перенаправить ресурсы на группы A и B",
			},
			Risks: []string{
				"Потери от списания остатков",
				"Недовольство постоянных клиентов",
				"Возможные контрактные обязательства",
			},
		}
	default:
		return domain.SegmentGuidance{
			Title:           "Требует дополнительного анализа",
			Reasons:         []string{"Сегмент не классифицирован"},
			Recommendations: []string{"Проверить полноту данных по товару"},
			Risks:           []string{"Решения без классификации могут быть ошибочными"},
		}
	}
}

func (e *Engine) azGuidance(revenue float64) domain.SegmentGuidance {
	var title, scaleReason, extraRec, scaleRisk string
	switch {
	case revenue > e.cfg.AZCriticalRevenue:
		title = "Критические проблемные товары - срочный анализ"
		scaleReason = "Критический масштаб влияния на бизнес"
		extraRec = "Создать отдельную команду для управления товаром"
		scaleRisk = "Критическое влияние на общую прибыльность компании"
	case revenue > e.cfg.AZHighRevenue:
		title = "Контрольные проблемные товары - детальный анализ"
		scaleReason = "Значительное влияние на финансовые показатели"
		extraRec = "Назначить ответственного менеджера"
		scaleRisk = "Значительные финансовые потери"
	default:
		title = "Условно-стабильные товары - мониторинг"
		scaleReason = "Умеренное влияние на общую прибыльность"
		extraRec = "Назначить ответственного менеджера"
		scaleRisk = "Значительные финансовые потери"
	}

	return domain.SegmentGuidance{
		Title: title,
		Reasons: []string{
			"Высокая доля в выручке, но нерегулярный спрос",
			"Высокий коэффициент вариации создает риски",
			"Сложность в планировании и управлении запасами",
			scaleReason,
		},
		Recommendations: []string{
			"Провести глубокий анализ причин нестабильности",
			"Изучить поведение клиентов и факторы спроса",
			"Рассмотреть сегментацию клиентской базы",
			"Разработать гибкую систему поставок",
			extraRec,
		},
		Risks: []string{
			"Высокие затраты на хранение",
			"Потери от неликвидных остатков",
			"Сложность в планировании денежных потоков",
			scaleRisk,
		},
	}
}
