package main

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/abatilo/tempo/internal/dates"
	tempoerrors "github.com/abatilo/tempo/internal/errors"
	"github.com/abatilo/tempo/internal/task"
)

const maxPct = 100

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, InvalidIDError{Value: s}
	}
	return id, nil
}

func parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, InvalidNumberError{Name: name, Value: s}
	}
	return n, nil
}

func parseDate(s string) (time.Time, error) {
	t, ok := dates.Parse(s)
	if !ok {
		return time.Time{}, tempoerrors.InvalidDateError{Value: s}
	}
	return t, nil
}

// parseDepType accepts FS, SS, FF or SF in any case. Empty means FS.
func parseDepType(s string) (task.DepType, error) {
	dt := task.NormalizeDepType(task.DepType(strings.ToUpper(strings.TrimSpace(s))))
	if !task.IsValidDepType(dt) {
		return "", tempoerrors.InvalidDepTypeError{Value: s}
	}
	return dt, nil
}

func parseDepLogic(s string) (task.DepLogic, error) {
	l := task.DepLogic(strings.ToUpper(strings.TrimSpace(s)))
	if !task.IsValidDepLogic(l) {
		return "", tempoerrors.InvalidDepLogicError{Value: s}
	}
	return l, nil
}

func checkRange(name string, v, lo, hi int) error {
	if v < lo || v > hi {
		return OutOfRangeError{Name: name, Value: v, Min: lo, Max: hi}
	}
	return nil
}

func checkDur(dur int) error {
	return checkRange("dur", dur, 0, math.MaxInt32)
}

func checkPct(pct int) error {
	return checkRange("pct", pct, 0, maxPct)
}
