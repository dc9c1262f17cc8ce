package sheetssql

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// headerRows is the number of rows preceding data in every table
const headerRows = 2

// GetTableAs reads every data row of the table backing T
func GetTableAs[T any](db *DB) ([]T, error) {
	var model T
	t := reflect.TypeOf(model)
	tableName := TableName(t)

	values, err := db.client.GetValues(db.spreadsheetID, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get table %s: %w", tableName, err)
	}

	if len(values) <= headerRows {
		return []T{}, nil
	}

	columnIndexes := make(map[string]int)
	for i, header := range values[0] {
		if name, ok := header.(string); ok {
			columnIndexes[name] = i
		}
	}

	results := make([]T, 0, len(values)-headerRows)
	for rowIdx, row := range values[headerRows:] {
		if isBlankRow(row) {
			continue
		}

		result := reflect.New(t).Elem()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			colIdx, ok := columnIndexes[field.Tag.Get("ssql_header")]
			if !ok || colIdx >= len(row) || row[colIdx] == nil {
				continue
			}

			if err := setFieldValue(result.Field(i), row[colIdx]); err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", rowIdx+headerRows+1, field.Tag.Get("ssql_header"), err)
			}
		}

		results = append(results, result.Interface().(T))
	}

	return results, nil
}

func isBlankRow(row []interface{}) bool {
	for _, cell := range row {
		if strings.TrimSpace(fmt.Sprint(cell)) != "" {
			return false
		}
	}
	return true
}

// setFieldValue converts a sheet cell to the field's Go type
func setFieldValue(field reflect.Value, cellValue interface{}) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	cellStr, ok := cellValue.(string)
	if !ok {
		cellStr = fmt.Sprint(cellValue)
	}
	cellStr = strings.TrimSpace(cellStr)

	switch field.Kind() {
	case reflect.String:
		field.SetString(cellStr)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if cellStr == "" {
			field.SetInt(0)
			return nil
		}
		intVal, err := strconv.ParseInt(cellStr, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse int: %w", err)
		}
		field.SetInt(intVal)

	case reflect.Bool:
		if cellStr == "" {
			field.SetBool(false)
			return nil
		}
		boolVal, err := strconv.ParseBool(cellStr)
		if err != nil {
			return fmt.Errorf("failed to parse bool: %w", err)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// InsertModel appends a struct as a row to its table
func InsertModel[T any](db *DB, model T) error {
	return InsertModels(db, []T{model})
}

// InsertModels appends structs as rows to their table, in field order
func InsertModels[T any](db *DB, models []T) error {
	if len(models) == 0 {
		return nil
	}

	t := reflect.TypeOf(models[0])
	rows := make([][]interface{}, 0, len(models))
	for _, model := range models {
		v := reflect.ValueOf(model)
		row := make([]interface{}, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).Tag.Get("ssql_header") == "" {
				continue
			}
			row = append(row, v.Field(i).Interface())
		}
		rows = append(rows, row)
	}

	return db.InsertRows(TableName(t), rows)
}
