package main

import (
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

func joinInts(values []int) string {
	s := make([]string, len(values))
	for i, v := range values {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, " ")
}

func arraysString(arrays [][]int) string {
	s := make([]string, len(arrays))
	for i, a := range arrays {
		s[i] = "[" + joinInts(a) + "]"
	}
	return strings.Join(s, " ")
}

// printReports renders the reports in rank order, one table per exchange.
func printReports(reports []report, root int) error {
	pterm.DefaultSection.Printfln("gather to rank %d", root)
	gather := pterm.TableData{{"rank", "neighbors", "sent", "gathered"}}
	for _, r := range reports {
		gathered := pterm.FgDarkGray.Sprint("-")
		if r.Rank == root {
			gathered = arraysString(r.Gathered)
		}
		gather = append(gather, []string{strconv.Itoa(r.Rank), joinInts(r.Neighbors), joinInts(r.Sent), gathered})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(gather).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("allgather")
	all := pterm.TableData{{"rank", "received"}}
	for _, r := range reports {
		all = append(all, []string{strconv.Itoa(r.Rank), arraysString(r.AllGathered)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(all).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("neighbor alltoall")
	nb := pterm.TableData{{"rank", "neighbors", "received"}}
	for _, r := range reports {
		nb = append(nb, []string{strconv.Itoa(r.Rank), joinInts(r.Neighbors), joinInts(r.FromNeighbors)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(nb).Render(); err != nil {
		return err
	}

	pterm.DefaultSection.Println("public keys")
	keys := pterm.TableData{{"rank", "keys"}}
	for _, r := range reports {
		keys = append(keys, []string{strconv.Itoa(r.Rank), strings.Join(r.Keys, " ")})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(keys).Render(); err != nil {
		return err
	}
	pterm.Success.Printfln("%d ranks agree on every public key", len(reports))
	return nil
}
