package uci

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Option interface {
	UciName() string
	UciString() string
	Set(s string) error
}

type BoolOption struct {
	Name  string
	Value *bool
}

func (opt *BoolOption) UciName() string {
	return opt.Name
}

func (opt *BoolOption) UciString() string {
	return fmt.Sprintf("option name %v type %v default %v",
		opt.Name, "check", *opt.Value)
}

func (opt *BoolOption) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*opt.Value = v
	return nil
}

type IntOption struct {
	Name  string
	Min   int
	Max   int
	Value *int
}

func (opt *IntOption) UciName() string {
	return opt.Name
}

func (opt *IntOption) UciString() string {
	return fmt.Sprintf("option name %v type %v default %v min %v max %v",
		opt.Name, "spin", *opt.Value, opt.Min, opt.Max)
}

func (opt *IntOption) Set(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v < opt.Min || v > opt.Max {
		return errors.New("argument out of range")
	}
	*opt.Value = v
	return nil
}

// ComboOption stores the index of the chosen value.
type ComboOption struct {
	Name    string
	Choices []string
	Value   *int
}

func (opt *ComboOption) UciName() string {
	return opt.Name
}

func (opt *ComboOption) UciString() string {
	var sb = &strings.Builder{}
	fmt.Fprintf(sb, "option name %v type %v default %v",
		opt.Name, "combo", opt.Choices[*opt.Value])
	for _, choice := range opt.Choices {
		fmt.Fprintf(sb, " var %v", choice)
	}
	return sb.String()
}

func (opt *ComboOption) Set(s string) error {
	for i, choice := range opt.Choices {
		if strings.EqualFold(choice, s) {
			*opt.Value = i
			return nil
		}
	}
	return fmt.Errorf("unknown value %v for option %v", s, opt.Name)
}
