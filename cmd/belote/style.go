package main

import (
	"strings"

	"github.com/pterm/pterm"

	"belote/bidding"
	"belote/game"
)

func printHands(players [game.NumPositions]game.Player) {
	var panels []pterm.Panel
	for _, p := range players {
		panels = append(panels, pterm.Panel{Data: handBox(p)})
	}
	pterm.DefaultPanel.WithPanels([][]pterm.Panel{panels[:2], panels[2:]}).Render()
}

func handBox(p game.Player) string {
	pbox := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2)
	var lines []string
	for _, c := range sortHand(p.Hand()) {
		lines = append(lines, c.String())
	}
	title := pterm.Sprintf("%s (%s)", p.Name, p.Position.Side())
	return pbox.WithTitle(title).WithTitleTopLeft().Sprint(strings.Join(lines, "\n"))
}

func printAuction(round bidding.Round) {
	data := pterm.TableData{{"#", "Seat", "Bid"}}
	for i, b := range round.Bids() {
		data = append(data, []string{pterm.Sprint(i + 1), seatNames[b.Bidder()], bidding.FormatBid(b)})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printOutcome(round bidding.Round) {
	switch round.Status() {
	case bidding.StatusContracted:
		c, _ := bidding.GetContract(round)
		pterm.Success.Printfln("Contract: %s, stake %d", c, c.Stake())
	case bidding.StatusPassedOut:
		pterm.Warning.Println("Passed out, the deal moves on")
	default:
		opts := round.LegalOptions()
		pterm.Info.Printfln("%s to speak (minimum suit bid %d)", seatNames[opts.Bidder], opts.MinSuitValue)
	}
}
