package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/urbanwatch/urban-change-cli/internal/utils"
)

// Colors for consistent UI
const (
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorReset  = "\033[0m"
)

// PrintWarning displays a warning message with consistent formatting
func PrintWarning(message string) {
	fmt.Printf("%s\nWarning:%s\n", ColorYellow, ColorReset)
	fmt.Printf("%s%s%s\n", ColorYellow, message, ColorReset)
}

// PrintError displays an error message with consistent formatting
func PrintError(message string) {
	fmt.Printf("\n%sError: %s%s\n", ColorRed, message, ColorReset)
}

// PrintSuccess displays a success message with consistent formatting
func PrintSuccess(message string) {
	fmt.Printf("\n%s%s%s\n", ColorGreen, message, ColorReset)
}

// PrintInfo displays an info message with consistent formatting
func PrintInfo(message string) {
	fmt.Printf("%s%s%s", ColorBlue, message, ColorReset)
}

// ReadString reads a string from stdin with trimming
func ReadString(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	PrintInfo(prompt)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// ReadInt reads an integer from stdin with validation
func ReadInt(prompt string, min, max int) (int, error) {
	PrintInfo(prompt)
	var input string
	fmt.Scanln(&input)
	input = strings.TrimSpace(input)

	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}

	if value < min || value > max {
		return 0, fmt.Errorf("value must be between %d and %d", min, max)
	}

	return value, nil
}

// ReadIntDefault reads an integer, falling back to a default on empty input
func ReadIntDefault(prompt string, min, max, def int) (int, error) {
	input := ReadString(fmt.Sprintf("%s [%d]: ", prompt, def))
	if input == "" {
		return def, nil
	}

	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("value must be between %d and %d", min, max)
	}
	return value, nil
}

// ReadYears reads a list of acquisition years. Accepts a comma-separated
// list ("2018,2021,2024") or an inclusive range ("2018-2024"). An empty
// input selects every year from 2017 to the current year.
func ReadYears(prompt string) ([]int, error) {
	input := ReadString(prompt)
	currentYear := time.Now().Year()

	if input == "" {
		years := []int{}
		for year := 2017; year <= currentYear; year++ {
			years = append(years, year)
		}
		return years, nil
	}

	if strings.Contains(input, "-") {
		parts := strings.SplitN(input, "-", 2)
		start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid start year: %s", parts[0])
		}
		end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid end year: %s", parts[1])
		}
		if start > end {
			return nil, fmt.Errorf("start year %d is after end year %d", start, end)
		}
		years := []int{}
		for year := start; year <= end; year++ {
			years = append(years, year)
		}
		return validateYears(years, currentYear)
	}

	years := []int{}
	for _, part := range strings.Split(input, ",") {
		year, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid year: %s", part)
		}
		years = append(years, year)
	}
	return validateYears(utils.SortYears(years, true), currentYear)
}

// Sentinel-2 data starts in mid 2015, full summer coverage from 2016.
func validateYears(years []int, currentYear int) ([]int, error) {
	if len(years) == 0 {
		return nil, fmt.Errorf("no years selected")
	}
	for _, year := range years {
		if year < 2016 || year > currentYear {
			return nil, fmt.Errorf("year %d outside the available archive (2016-%d)", year, currentYear)
		}
	}
	return years, nil
}
