// Package main содержит точку входа административного CLI articlectl.
//
// Пакет отвечает за запуск консольной утилиты и передачу информации о версии и дате сборки в CLI-слой приложения.
package main

import "github.com/jotvibfeng/development-platforms-ca/internal/ctl"

var (
	// buildVersion содержит версию приложения, передаваемую при сборке.
	// По умолчанию используется значение "dev".
	buildVersion = "dev"
	// buildDate содержит дату сборки приложения.
	// По умолчанию используется значение "unknown".
	buildDate = "unknown"
)

func main() {
	ctl.Execute(buildVersion, buildDate)
}
