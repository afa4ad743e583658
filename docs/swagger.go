// Package docs Hotel Search Service API.
//
// Сервис агрегации поиска отелей. Принимает один поисковый запрос,
// параллельно опрашивает несколько провайдеров (Airbnb, Hotels.com,
// Google Hotels) через Outscraper, нормализует и обогащает результаты
// координатами, фильтрует выбросы за пределами области поиска,
// ранжирует, схлопывает дубликаты и кеширует ответы в Redis.
//
// Основные возможности:
// - Поиск отелей по нескольким локациям за один запрос
// - Обогащение координат через геокодирование с цепочкой fallback
// - Фильтрация результатов за пределами области поиска
// - Детерминированное ранжирование и дедупликация
// - Получение закешированного результата по каноническому id
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
